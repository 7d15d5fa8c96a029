package errx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapNil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Fetch("cart.fetch", nil))
	assert.NoError(t, Write("cart.add", nil))
	assert.NoError(t, Storage("session.get", nil))
}

func TestKindAndCauseMatch(t *testing.T) {
	t.Parallel()

	err := Write("cart.add", context.DeadlineExceeded)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, "cart.add: write failed: context deadline exceeded", err.Error())

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "cart.add", e.Op)
}
