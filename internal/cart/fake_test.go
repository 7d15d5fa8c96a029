package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/chalher_shop/internal/models"
)

var errNotFound = errors.New("not found")

// fakeStore is an in-memory record store without the merge capability.
type fakeStore struct {
	mu      sync.Mutex
	rows    []models.CartItem
	listErr error
	aerr    error
	calls   []string
}

func (f *fakeStore) ListCartItems(_ context.Context, sessionID string) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.CartItem, 0)
	for _, r := range f.rows {
		if r.UserSessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertCartItem(_ context.Context, item *models.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "insert")
	if f.aerr != nil {
		return f.aerr
	}
	now := time.Now().UTC()
	item.ID = uuid.New()
	item.Message = models.NormalizeMessage(item.Message)
	item.CreatedAt, item.UpdatedAt = now, now
	f.rows = append(f.rows, *item)
	return nil
}

func (f *fakeStore) UpdateCartItemQuantity(_ context.Context, id uuid.UUID, quantity uint) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update")
	if f.aerr != nil {
		return nil, f.aerr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Quantity = quantity
			f.rows[i].UpdatedAt = time.Now().UTC().Add(time.Millisecond)
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeStore) DeleteCartItem(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete")
	if f.aerr != nil {
		return f.aerr
	}
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

// mergingStore adds the atomic merge on top of fakeStore.
type mergingStore struct {
	fakeStore
}

func (m *mergingStore) MergeCartLine(_ context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "merge")
	if m.aerr != nil {
		return m.aerr
	}
	for i := range m.rows {
		r := m.rows[i]
		if r.UserSessionID == item.UserSessionID && r.SameLine(item.ProductID, item.Message) {
			m.rows[i].Quantity += item.Quantity
			m.rows[i].UpdatedAt = time.Now().UTC().Add(time.Millisecond)
			*item = m.rows[i]
			return nil
		}
	}
	now := time.Now().UTC()
	item.ID = uuid.New()
	item.Message = models.NormalizeMessage(item.Message)
	item.CreatedAt, item.UpdatedAt = now, now
	m.rows = append(m.rows, *item)
	return nil
}

type priceMap map[uuid.UUID]models.Product

func (p priceMap) Product(id uuid.UUID) (models.Product, bool) {
	v, ok := p[id]
	return v, ok
}
