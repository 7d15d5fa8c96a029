package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/testutil"
)

type stubIndex struct {
	indexed []models.Product
	total   int64
	hits    []models.Product
	err     error
}

func (s *stubIndex) IndexProducts(_ context.Context, products []models.Product) error {
	s.indexed = products
	return s.err
}

func (s *stubIndex) Search(context.Context, string, int, int) (int64, []models.Product, error) {
	return s.total, s.hits, s.err
}

func TestCatalogService_SeedIdempotent(t *testing.T) {
	svc := &CatalogService{Repo: testutil.NewRepo(t)}
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, CatalogSize, n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, CatalogSize)
	assert.Equal(t, "MODÈLE EXCELLENCE N°1 - CHALHER PARIS", all[0].Title)
	assert.Equal(t, "images/hijab18.jpeg", all[17].ImageURL)
	assert.True(t, all[5].Price.Equal(DefaultPrice))
}

func TestCatalogService_SearchFallback(t *testing.T) {
	svc := &CatalogService{Repo: testutil.NewRepo(t)}
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	total, items, err := svc.SearchProducts(ctx, "1", 1, 5)
	require.NoError(t, err)
	// 1, 10..18
	assert.EqualValues(t, 10, total)
	require.Len(t, items, 5)
	assert.Equal(t, 1, items[0].ModelNumber)
	assert.Equal(t, 13, items[4].ModelNumber)

	_, items, err = svc.SearchProducts(ctx, "1", 3, 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCatalogService_SearchHugePage(t *testing.T) {
	svc := &CatalogService{Repo: testutil.NewRepo(t)}
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	total, items, err := svc.SearchProducts(ctx, "", 922337203685477581, 20)
	require.NoError(t, err)
	assert.EqualValues(t, CatalogSize, total)
	assert.Empty(t, items)
}

func TestCatalogService_SearchIndex(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewRepo(t)
	products := testutil.SeedProducts(t, r, 3, "54.95")

	idx := &stubIndex{total: 1, hits: products[1:2]}
	svc := &CatalogService{Repo: r, Index: idx}

	total, items, err := svc.SearchProducts(ctx, "n°2", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 2, items[0].ModelNumber)

	idx.err = errors.New("es down")
	total, items, err = svc.SearchProducts(ctx, "n°2", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 2, items[0].ModelNumber)

	idx.err = nil
	require.NoError(t, svc.Reindex(ctx))
	assert.Len(t, idx.indexed, 3)
}
