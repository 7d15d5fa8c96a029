package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/models"
)

type stubSource struct {
	items []models.Product
	err   error
	calls int
}

func (s *stubSource) ListProducts(context.Context) ([]models.Product, error) {
	s.calls++
	return s.items, s.err
}

func products(n int) []models.Product {
	out := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Product{
			ID:          uuid.New(),
			ModelNumber: i,
			Title:       DisplayTitle(i),
			Price:       decimal.RequireFromString("54.95"),
			ImageURL:    ImageURL(i),
		})
	}
	return out
}

func TestLoad_OK(t *testing.T) {
	t.Parallel()
	src := &stubSource{items: products(18)}
	c := New(src)
	assert.True(t, c.Loading())

	require.NoError(t, c.Load(context.Background()))
	assert.False(t, c.Loading())
	assert.Len(t, c.Products(), 18)
	assert.Equal(t, 1, src.calls)

	p, ok := c.ByModelNumber(7)
	require.True(t, ok)
	got, ok := c.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, 7, got.ModelNumber)
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()
	c := New(&stubSource{})

	require.NoError(t, c.Load(context.Background()))
	assert.Empty(t, c.Products())
	assert.False(t, c.Loading())
}

func TestLoad_Failure(t *testing.T) {
	t.Parallel()
	c := New(&stubSource{items: products(3), err: errors.New("connection refused")})

	err := c.Load(context.Background())
	require.ErrorIs(t, err, errx.ErrFetchFailed)
	assert.Empty(t, c.Products())
	assert.False(t, c.Loading())
	_, ok := c.ByModelNumber(1)
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	t.Parallel()
	c := New(&stubSource{items: products(18)})
	require.NoError(t, c.Load(context.Background()))

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "blank", query: "   ", want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}},
		{name: "number", query: "12", want: []int{12}},
		{name: "digit", query: "8", want: []int{8, 18}},
		{name: "label case-insensitive", query: "excellence n°3", want: []int{3}},
		{name: "no match", query: "robe", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]int, 0)
			for _, p := range c.Filter(tt.query) {
				got = append(got, p.ModelNumber)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetail(t *testing.T) {
	t.Parallel()
	c := New(&stubSource{items: products(4)})
	require.NoError(t, c.Load(context.Background()))

	d, ok := c.Detail(2)
	require.True(t, ok)
	assert.Equal(t, "MODÈLE EXCELLENCE N°2 - CHALHER PARIS", d.Title)
	assert.Equal(t, "images/hijab2.jpeg", d.ImageURL)
	require.Len(t, d.Thumbnails, 4)

	active := 0
	for _, th := range d.Thumbnails {
		if th.Active {
			active++
			assert.Equal(t, 2, th.ModelNumber)
		}
	}
	assert.Equal(t, 1, active)

	_, ok = c.Detail(99)
	assert.False(t, ok)
}
