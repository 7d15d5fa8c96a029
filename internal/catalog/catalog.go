// Package catalog loads the product list once and answers lookups over it.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

type Source interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type Catalog struct {
	Source Source

	mu       sync.RWMutex
	products []models.Product
	byID     map[uuid.UUID]models.Product
	byModel  map[int]models.Product
	loading  bool
}

func New(src Source) *Catalog {
	return &Catalog{Source: src, loading: true}
}

// Load reads every product in a single request. On failure the catalog is
// left empty.
func (c *Catalog) Load(ctx context.Context) error {
	logger := logging.FromContext(ctx).With("component", "catalog")

	items, err := c.Source.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.products, c.byID, c.byModel = nil, nil, nil
		logger.Error("catalog_load_failed", "error", err)
		return errx.Fetch("catalog.load", err)
	}

	c.products = items
	c.byID = make(map[uuid.UUID]models.Product, len(items))
	c.byModel = make(map[int]models.Product, len(items))
	for _, p := range items {
		c.byID[p.ID] = p
		c.byModel[p.ModelNumber] = p
	}
	logger.Debug("catalog_loaded", "count", len(items))
	return nil
}

// Loading is true until the first Load returns.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Filter(query string) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Product(id uuid.UUID) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) ByModelNumber(n int) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byModel[n]
	return p, ok
}

type Thumbnail struct {
	ModelNumber int
	ImageURL    string
	Active      bool
}

type Detail struct {
	Product    models.Product
	Title      string
	ImageURL   string
	Thumbnails []Thumbnail
}

func DisplayTitle(n int) string {
	return fmt.Sprintf("%s - CHALHER PARIS", models.ModelLabel(n))
}

func ImageURL(n int) string {
	return fmt.Sprintf("images/hijab%d.jpeg", n)
}

// Detail builds the detail view of model n with the thumbnail strip of
// every loaded model.
func (c *Catalog) Detail(n int) (Detail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byModel[n]
	if !ok {
		return Detail{}, false
	}
	img := p.ImageURL
	if img == "" {
		img = ImageURL(n)
	}

	thumbs := make([]Thumbnail, 0, len(c.products))
	for _, other := range c.products {
		u := other.ImageURL
		if u == "" {
			u = ImageURL(other.ModelNumber)
		}
		thumbs = append(thumbs, Thumbnail{
			ModelNumber: other.ModelNumber,
			ImageURL:    u,
			Active:      other.ModelNumber == n,
		})
	}
	return Detail{Product: p, Title: DisplayTitle(n), ImageURL: img, Thumbnails: thumbs}, true
}
