// Package storeapi runs the store API in-process for client tests.
package storeapi

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/chalher_shop/internal/events"
	"github.com/Skotchmaster/chalher_shop/internal/httpserver"
	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/repo"
	"github.com/Skotchmaster/chalher_shop/internal/service"
	"github.com/Skotchmaster/chalher_shop/internal/testutil"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

type API struct {
	Echo     *echo.Echo
	Server   *httptest.Server
	Repo     *repo.GormRepo
	Products []models.Product
}

// New serves the store API over a fresh database seeded with the
// default catalog. secret enables the apikey check when non-empty.
func New(t *testing.T, secret []byte, publisher events.Publisher) *API {
	t.Helper()

	r := testutil.NewRepo(t)
	catalog := &service.CatalogService{Repo: r}
	if _, err := catalog.Seed(t.Context()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	products, err := r.ListProducts(t.Context())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if publisher == nil {
		publisher = events.Nop{}
	}

	e := httpserver.New(logging.NewWithWriter(io.Discard, "error"), &httpserver.Deps{
		ProductHandler:  &httpserver.ProductHTTP{Svc: catalog},
		CartItemHandler: &httpserver.CartItemHTTP{Svc: &service.CartService{Repo: r, Events: publisher}},
		APIKeySecret:    secret,
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &API{Echo: e, Server: srv, Repo: r, Products: products}
}
