package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/kv"
)

func TestPreferences_DefaultCard(t *testing.T) {
	t.Parallel()

	m, err := NewPreferences(kv.NewMemoryStore()).PaymentMethod(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentMethod, m)
}

func TestPreferences_UpdatePersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()

	require.NoError(t, NewPreferences(store).UpdatePaymentMethod(ctx, " paypal "))

	m, err := NewPreferences(store).PaymentMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, "paypal", m)
}

func TestPreferences_RejectsEmpty(t *testing.T) {
	t.Parallel()

	err := NewPreferences(kv.NewMemoryStore()).UpdatePaymentMethod(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyPaymentMethod)
}

func TestPreferences_StorageDown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := NewPreferences(brokenStore{getErr: errors.New("down"), setErr: errors.New("down")})

	m, err := p.PaymentMethod(ctx)
	require.ErrorIs(t, err, errx.ErrStorageUnavailable)
	assert.Equal(t, DefaultPaymentMethod, m)

	require.ErrorIs(t, p.UpdatePaymentMethod(ctx, "paypal"), errx.ErrStorageUnavailable)
	m, err = p.PaymentMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, "paypal", m, "the in-memory value survives a failed write")
}
