package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/repo"
	"github.com/Skotchmaster/chalher_shop/internal/util"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

const CatalogSize = 18

var DefaultPrice = decimal.RequireFromString("54.95")

type ProductIndex interface {
	IndexProducts(ctx context.Context, products []models.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogService struct {
	Repo *repo.GormRepo
	// Index is optional; without it search runs over the database.
	Index ProductIndex
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, page, size int) (int64, []models.Product, error) {
	offset, limit := util.Calculate(page, size)

	if s.Index != nil && query != "" {
		total, items, err := s.Index.Search(ctx, query, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "error", err)
	}

	all, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return 0, nil, err
	}
	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Matches(query) {
			matched = append(matched, p)
		}
	}
	lo, hi := util.Window(len(matched), offset, limit)
	return int64(len(matched)), matched[lo:hi], nil
}

// DefaultCatalog is the collection of n models at the default price.
func DefaultCatalog(n int) []models.Product {
	out := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Product{
			ModelNumber: i,
			Title:       models.ModelLabel(i) + " - CHALHER PARIS",
			Price:       DefaultPrice,
			ImageURL:    fmt.Sprintf("images/hijab%d.jpeg", i),
		})
	}
	return out
}

// Seed stores the default catalog, skipping models that already exist.
func (s *CatalogService) Seed(ctx context.Context) (int64, error) {
	return s.Repo.SeedProducts(ctx, DefaultCatalog(CatalogSize))
}

// Reindex pushes every stored product into the search index.
func (s *CatalogService) Reindex(ctx context.Context) error {
	if s.Index == nil {
		return nil
	}
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	return s.Index.IndexProducts(ctx, items)
}
