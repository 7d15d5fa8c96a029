// Package kv is the local persistent key-value storage of the storefront,
// the counterpart of a browser's localStorage.
package kv

import "context"

type Store interface {
	// Get returns ok=false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
