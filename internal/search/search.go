package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/chalher_shop/internal/models"
)

const DefaultIndex = "products"

var ErrSearch = errors.New("search failed")

type Index struct {
	ES   *elasticsearch.Client
	Name string
}

type document struct {
	models.Product
	Label string `json:"label"`
}

// IndexProducts writes each product under its id and refreshes the index.
func (ix *Index) IndexProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(document{Product: p, Label: models.ModelLabel(p.ModelNumber)}); err != nil {
			return fmt.Errorf("%w: encode: %v", ErrSearch, err)
		}
		res, err := ix.ES.Index(ix.Name, &buf,
			ix.ES.Index.WithContext(ctx),
			ix.ES.Index.WithDocumentID(p.ID.String()),
		)
		if err != nil {
			return fmt.Errorf("%w: index %s: %v", ErrSearch, p.ID, err)
		}
		failed := res.IsError()
		status := res.Status()
		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()
		if failed {
			return fmt.Errorf("%w: index %s: %s", ErrSearch, p.ID, status)
		}
	}

	res, err := ix.ES.Indices.Refresh(
		ix.ES.Indices.Refresh.WithContext(ctx),
		ix.ES.Indices.Refresh.WithIndex(ix.Name),
	)
	if err != nil {
		return fmt.Errorf("%w: refresh: %v", ErrSearch, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: refresh: %s", ErrSearch, res.Status())
	}
	return nil
}

func (ix *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "label", "model_number"},
				"fuzziness": "AUTO",
				"lenient":   true,
			},
		},
		"sort": []any{"_score", map[string]any{"model_number": "asc"}},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Name),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("%w: %s", ErrSearch, res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("%w: decode: %v", ErrSearch, err)
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
