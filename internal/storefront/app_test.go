package storefront

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/chalher_shop/internal/config"
	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/kv"
	"github.com/Skotchmaster/chalher_shop/internal/session"
	"github.com/Skotchmaster/chalher_shop/internal/testutil/storeapi"
	pkgredis "github.com/Skotchmaster/chalher_shop/pkg/redis"
	"github.com/Skotchmaster/chalher_shop/pkg/storeclient"
)

type downKV struct{}

func (downKV) Get(context.Context, string) (string, bool, error) { return "", false, errors.New("eio") }
func (downKV) Set(context.Context, string, string) error         { return errors.New("eio") }

func TestStart(t *testing.T) {
	api := storeapi.New(t, nil, nil)
	client := storeclient.NewClient(api.Server.URL, "", 0)
	ctx := context.Background()
	local := kv.NewMemoryStore()

	first := New(client, local)
	assert.True(t, first.Loading())
	require.NoError(t, first.Start(ctx))
	assert.False(t, first.Loading())
	assert.Len(t, first.Catalog.Products(), 18)

	p, _ := first.Catalog.ByModelNumber(1)
	require.NoError(t, first.Cart.Add(ctx, p.ID, "Inès"))

	// a second run on the same device sees the same cart
	second := New(client, local)
	require.NoError(t, second.Start(ctx))
	assert.Equal(t, first.Cart.SessionID(), second.Cart.SessionID())
	require.Len(t, second.Cart.Items(), 1)
	assert.Equal(t, "Inès", *second.Cart.Items()[0].Message)
}

func TestStart_StorageDown(t *testing.T) {
	api := storeapi.New(t, nil, nil)
	client := storeclient.NewClient(api.Server.URL, "", 0)

	app := New(client, downKV{})
	err := app.Start(context.Background())
	require.ErrorIs(t, err, errx.ErrStorageUnavailable)
	assert.NotEmpty(t, app.Cart.SessionID())
	assert.Len(t, app.Catalog.Products(), 18)
	assert.False(t, app.Loading())
}

func TestStart_StoreDown(t *testing.T) {
	client := storeclient.NewClient("http://127.0.0.1:1", "", 0)

	app := New(client, kv.NewMemoryStore())
	err := app.Start(context.Background())
	require.ErrorIs(t, err, errx.ErrFetchFailed)
	assert.Empty(t, app.Catalog.Products())
	assert.Empty(t, app.Cart.Items())
	assert.False(t, app.Loading())
}

func TestOpenKV(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := OpenKV(ctx, &config.Storefront{KVBackend: config.KVMemory})
	require.NoError(t, err)
	require.NoError(t, closeFn())
	_, ok := store.(*kv.MemoryStore)
	assert.True(t, ok)

	path := filepath.Join(t.TempDir(), "state.json")
	store, _, err = OpenKV(ctx, &config.Storefront{KVBackend: config.KVFile, StateFile: path})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, session.SessionKey, "session_x"))
	v, ok, err := kv.NewFileStore(path).Get(ctx, session.SessionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "session_x", v)

	store, _, err = OpenKV(ctx, &config.Storefront{KVBackend: "etcd"})
	require.Error(t, err)
	assert.Nil(t, store)
}

func TestOpenKV_RedisDownFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Storefront{
		KVBackend: config.KVRedis,
		Redis:     pkgredis.Config{URL: "redis://127.0.0.1:1/0", DialTimeout: 1},
	}

	store, closeFn, err := OpenKV(ctx, cfg)
	require.ErrorIs(t, err, errx.ErrStorageUnavailable)
	require.NotNil(t, store)
	require.NoError(t, closeFn())
	_, ok := store.(*kv.MemoryStore)
	assert.True(t, ok)

	api := storeapi.New(t, nil, nil)
	app := New(storeclient.NewClient(api.Server.URL, "", 0), store)
	require.NoError(t, app.Start(ctx))
	assert.NotEmpty(t, app.Cart.SessionID())
	assert.Len(t, app.Catalog.Products(), 18)
}
