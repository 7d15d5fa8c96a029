package storefront

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/chalher_shop/internal/config"
	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/kv"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

// OpenKV returns the local store picked by cfg and a func releasing it.
// When the backend cannot be reached it returns a memory store together with
// an error wrapping errx.ErrStorageUnavailable. The store is nil only for an
// unknown backend.
func OpenKV(ctx context.Context, cfg *config.Storefront) (kv.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.KVBackend {
	case config.KVMemory:
		return kv.NewMemoryStore(), noop, nil
	case config.KVRedis:
		client, err := cfg.Redis.New(ctx)
		if err != nil {
			return memoryFallback(ctx, config.KVRedis, err)
		}
		return kv.NewRedisStore(client, cfg.KVNamespace), client.Close, nil
	case config.KVFile, "":
		path := cfg.StateFile
		if path == "" {
			p, err := kv.DefaultStatePath()
			if err != nil {
				return memoryFallback(ctx, config.KVFile, err)
			}
			path = p
		}
		return kv.NewFileStore(path), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown kv backend %q", cfg.KVBackend)
	}
}

func memoryFallback(ctx context.Context, backend string, err error) (kv.Store, func() error, error) {
	logging.FromContext(ctx).Warn("kv_open_failed", "backend", backend, "error", err)
	return kv.NewMemoryStore(), func() error { return nil }, errx.Storage("kv.open", err)
}
