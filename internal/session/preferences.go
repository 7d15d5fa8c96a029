package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/kv"
)

const (
	PaymentMethodKey     = "chalher_payment_method"
	DefaultPaymentMethod = "card"
)

var ErrEmptyPaymentMethod = errors.New("payment method must not be empty")

// Preferences holds local-only choices. Values set while storage is down
// are kept in memory.
type Preferences struct {
	Store kv.Store

	mu      sync.Mutex
	payment string
}

func NewPreferences(store kv.Store) *Preferences {
	return &Preferences{Store: store}
}

func (p *Preferences) PaymentMethod(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.payment != "" {
		return p.payment, nil
	}
	v, ok, err := p.Store.Get(ctx, PaymentMethodKey)
	if err != nil {
		return DefaultPaymentMethod, errx.Storage("preferences.get", err)
	}
	if !ok || v == "" {
		return DefaultPaymentMethod, nil
	}
	p.payment = v
	return v, nil
}

func (p *Preferences) UpdatePaymentMethod(ctx context.Context, method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return ErrEmptyPaymentMethod
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.payment = method
	if err := p.Store.Set(ctx, PaymentMethodKey, method); err != nil {
		return errx.Storage("preferences.set", err)
	}
	return nil
}
