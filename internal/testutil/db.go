// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/repo"
)

// NewRepo returns a migrated repo over a private in-memory SQLite database.
func NewRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

// SeedProducts stores n products priced at price, model numbers 1..n.
func SeedProducts(t *testing.T, r *repo.GormRepo, n int, price string) []models.Product {
	t.Helper()

	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, models.Product{
			ModelNumber: i,
			Title:       models.ModelLabel(i) + " - CHALHER PARIS",
			Price:       decimal.RequireFromString(price),
			ImageURL:    fmt.Sprintf("images/hijab%d.jpeg", i),
		})
	}
	_, err := r.SeedProducts(context.Background(), products)
	require.NoError(t, err)

	stored, err := r.ListProducts(context.Background())
	require.NoError(t, err)
	return stored
}
