// Package errx defines the failure kinds surfaced by the storefront client.
package errx

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed reports a failed read from the record store.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrWriteFailed reports a failed insert, update or delete.
	ErrWriteFailed = errors.New("write failed")
	// ErrStorageUnavailable reports that local persistent storage cannot be used.
	ErrStorageUnavailable = errors.New("local storage unavailable")
)

// Error ties a failure kind to the operation and the underlying cause.
// errors.Is matches both the kind and anything in the cause chain.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Fetch(op string, err error) error {
	return wrap(op, ErrFetchFailed, err)
}

func Write(op string, err error) error {
	return wrap(op, ErrWriteFailed, err)
}

func Storage(op string, err error) error {
	return wrap(op, ErrStorageUnavailable, err)
}

func wrap(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}
