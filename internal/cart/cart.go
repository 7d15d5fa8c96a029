// Package cart keeps a session's cart in sync with the remote record store.
// Every mutation is followed by a full re-fetch; the cached items always
// mirror the last successful read.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

var ErrNoSession = errors.New("no session")

// ErrNotRefreshed is returned by a mutation whose write was stored but whose
// re-fetch failed. It also matches errx.ErrFetchFailed; the cached items are
// the ones from before the write.
var ErrNotRefreshed = errors.New("cart saved but not refreshed")

type Store interface {
	ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error)
	InsertCartItem(ctx context.Context, item *models.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, id uuid.UUID, quantity uint) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id uuid.UUID) error
}

// LineMerger is implemented by stores that can add to a line or create it
// in one atomic step.
type LineMerger interface {
	MergeCartLine(ctx context.Context, item *models.CartItem) error
}

type PriceLookup interface {
	Product(id uuid.UUID) (models.Product, bool)
}

type Cart struct {
	store     Store
	prices    PriceLookup
	sessionID string

	// mut serializes mutations, mu guards items.
	mut   sync.Mutex
	mu    sync.RWMutex
	items []models.CartItem
}

func New(store Store, prices PriceLookup, sessionID string) *Cart {
	return &Cart{store: store, prices: prices, sessionID: sessionID}
}

func (c *Cart) SessionID() string {
	return c.sessionID
}

// Fetch replaces the cached items with the store's lines for the session.
// Without a session it does nothing.
func (c *Cart) Fetch(ctx context.Context) ([]models.CartItem, error) {
	if c.sessionID == "" {
		return nil, nil
	}
	items, err := c.store.ListCartItems(ctx, c.sessionID)
	if err != nil {
		logging.FromContext(ctx).Error("cart_fetch_failed", "user_session_id", c.sessionID, "error", err)
		return nil, errx.Fetch("cart.fetch", err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return c.Items(), nil
}

// Add puts one unit of the product on the cart. A line with the same product
// and message gets its quantity raised instead of a second line.
// A failed write returns errx.ErrWriteFailed, a failed re-fetch ErrNotRefreshed.
func (c *Cart) Add(ctx context.Context, productID uuid.UUID, message string) error {
	if c.sessionID == "" {
		return ErrNoSession
	}
	c.mut.Lock()
	defer c.mut.Unlock()

	logger := logging.FromContext(ctx).With("user_session_id", c.sessionID, "product_id", productID)
	msg := models.NewMessage(message)

	if merger, ok := c.store.(LineMerger); ok {
		line := &models.CartItem{UserSessionID: c.sessionID, ProductID: productID, Message: msg, Quantity: 1}
		if err := merger.MergeCartLine(ctx, line); err != nil {
			logger.Error("cart_add_failed", "error", err)
			return errx.Write("cart.add", err)
		}
	} else if err := c.addFromCache(ctx, productID, msg); err != nil {
		logger.Error("cart_add_failed", "error", err)
		return err
	}
	return c.refresh(ctx)
}

func (c *Cart) refresh(ctx context.Context) error {
	if _, err := c.Fetch(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrNotRefreshed, err)
	}
	return nil
}

// addFromCache branches on the cached items. Two adds racing from different
// processes may both insert; the store's unique line index rejects the second.
func (c *Cart) addFromCache(ctx context.Context, productID uuid.UUID, msg *string) error {
	existing, found := c.findLine(productID, msg)
	if found {
		if _, err := c.store.UpdateCartItemQuantity(ctx, existing.ID, existing.Quantity+1); err != nil {
			return errx.Write("cart.add", err)
		}
		return nil
	}
	line := &models.CartItem{UserSessionID: c.sessionID, ProductID: productID, Message: msg, Quantity: 1}
	if err := c.store.InsertCartItem(ctx, line); err != nil {
		return errx.Write("cart.add", err)
	}
	return nil
}

func (c *Cart) findLine(productID uuid.UUID, msg *string) (models.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.SameLine(productID, msg) {
			return it, true
		}
	}
	return models.CartItem{}, false
}

// Remove deletes the line. Deleting a missing line succeeds. Errors are
// reported as for Add.
func (c *Cart) Remove(ctx context.Context, id uuid.UUID) error {
	if c.sessionID == "" {
		return ErrNoSession
	}
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.remove(ctx, id)
}

func (c *Cart) remove(ctx context.Context, id uuid.UUID) error {
	if err := c.store.DeleteCartItem(ctx, id); err != nil {
		logging.FromContext(ctx).Error("cart_remove_failed", "cart_item_id", id, "error", err)
		return errx.Write("cart.remove", err)
	}
	return c.refresh(ctx)
}

// UpdateQuantity sets the line's quantity. Zero or less removes the line.
// Errors are reported as for Add.
func (c *Cart) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if c.sessionID == "" {
		return ErrNoSession
	}
	c.mut.Lock()
	defer c.mut.Unlock()

	if quantity <= 0 {
		return c.remove(ctx, id)
	}
	if _, err := c.store.UpdateCartItemQuantity(ctx, id, uint(quantity)); err != nil {
		logging.FromContext(ctx).Error("cart_update_failed", "cart_item_id", id, "quantity", quantity, "error", err)
		return errx.Write("cart.update_quantity", err)
	}
	return c.refresh(ctx)
}

// Items returns a copy of the cached lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += int(it.Quantity)
	}
	return n
}

// UnitPrice is the catalog price of the product, or FallbackPrice when the
// product is unknown.
func (c *Cart) UnitPrice(productID uuid.UUID) decimal.Decimal {
	if c.prices != nil {
		if p, ok := c.prices.Product(productID); ok {
			return p.Price
		}
	}
	return FallbackPrice
}

func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(c.UnitPrice(it.ProductID).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

func (c *Cart) Shipping() decimal.Decimal {
	return ShippingFor(c.Subtotal())
}

func (c *Cart) Total() decimal.Decimal {
	sub := c.Subtotal()
	return sub.Add(ShippingFor(sub))
}
