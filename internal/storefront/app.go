// Package storefront wires the session, catalog and cart together and runs
// the start-up sequence.
package storefront

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/chalher_shop/internal/cart"
	"github.com/Skotchmaster/chalher_shop/internal/catalog"
	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/kv"
	"github.com/Skotchmaster/chalher_shop/internal/session"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

// Store is the remote record store as seen by the storefront.
type Store interface {
	catalog.Source
	cart.Store
}

type App struct {
	Session     *session.Provider
	Preferences *session.Preferences
	Catalog     *catalog.Catalog
	Cart        *cart.Cart

	store   Store
	loading atomic.Bool
}

func New(store Store, local kv.Store) *App {
	a := &App{
		Session:     session.NewProvider(local),
		Preferences: session.NewPreferences(local),
		Catalog:     catalog.New(store),
		store:       store,
	}
	a.loading.Store(true)
	return a
}

// Start loads the catalog while the session is resolved and the cart
// fetched. The app is usable whatever Start returns: failures leave the
// catalog or cart empty and are reported joined together.
func (a *App) Start(ctx context.Context) error {
	logger := logging.FromContext(ctx).With("component", "storefront")
	defer a.loading.Store(false)

	var catalogErr, sessionErr, cartErr error
	var g errgroup.Group

	g.Go(func() error {
		catalogErr = a.Catalog.Load(ctx)
		return nil
	})
	g.Go(func() error {
		id, err := a.Session.GetOrCreate(ctx)
		if err != nil {
			sessionErr = err
			logger.Warn("session_not_persisted", "error", err)
		}
		a.Cart = cart.New(a.store, a.Catalog, id)
		_, cartErr = a.Cart.Fetch(ctx)
		return nil
	})
	_ = g.Wait()

	err := errors.Join(catalogErr, sessionErr, cartErr)
	if err != nil && !onlyStorage(err) {
		logger.Error("startup_incomplete", "error", err)
	}
	return err
}

// Loading is true until Start has finished both the catalog load and the
// initial cart fetch.
func (a *App) Loading() bool {
	return a.loading.Load() || a.Catalog.Loading()
}

func onlyStorage(err error) bool {
	return errors.Is(err, errx.ErrStorageUnavailable) &&
		!errors.Is(err, errx.ErrFetchFailed) && !errors.Is(err, errx.ErrWriteFailed)
}
