package repo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/testutil"
)

func TestGormRepo_SeedProducts_Idempotent(t *testing.T) {
	r := testutil.NewRepo(t)
	ctx := context.Background()

	products := testutil.SeedProducts(t, r, 3, "54.95")
	require.Len(t, products, 3)

	again := []models.Product{{ModelNumber: 2, Title: "dup", Price: decimal.NewFromInt(1)}, {ModelNumber: 4, Title: "new", Price: decimal.NewFromInt(1)}}
	n, err := r.SeedProducts(ctx, again)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	all, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, p := range all {
		assert.Equal(t, i+1, p.ModelNumber)
	}
	assert.NotEqual(t, "dup", all[1].Title)
	assert.True(t, all[0].Price.Equal(decimal.RequireFromString("54.95")))
}
