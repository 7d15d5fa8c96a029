// Package session provides the anonymous visitor identity and the local
// preferences kept next to it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/kv"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

const SessionKey = "chalher_session_id"

// Provider hands out the session token stored under SessionKey, creating it
// on first use. When the store fails the token lives only in memory.
type Provider struct {
	Store kv.Store
	Now   func() time.Time

	mu sync.Mutex
	id string
}

func NewProvider(store kv.Store) *Provider {
	return &Provider{Store: store, Now: time.Now}
}

// GetOrCreate always returns a usable token. A non-nil error wraps
// errx.ErrStorageUnavailable and means the token will not outlive the process.
func (p *Provider) GetOrCreate(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id, nil
	}

	logger := logging.FromContext(ctx).With("component", "session")
	stored, ok, err := p.Store.Get(ctx, SessionKey)
	if err != nil {
		p.id = p.newID()
		logger.Warn("session_storage_unavailable", "op", "get", "error", err)
		return p.id, errx.Storage("session.get", err)
	}
	if ok && stored != "" {
		p.id = stored
		return p.id, nil
	}

	id := p.newID()
	p.id = id
	if err := p.Store.Set(ctx, SessionKey, id); err != nil {
		logger.Warn("session_storage_unavailable", "op", "set", "error", err)
		return id, errx.Storage("session.set", err)
	}
	return id, nil
}

func (p *Provider) newID() string {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return fmt.Sprintf("session_%d_%s", now().UnixMilli(), uuid.NewString())
}
