package ports

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is returned when the backing store cannot be reached.
var ErrStoreUnavailable = errors.New("key-value store unavailable")

// Port: a string key-value store used for small persisted documents.
type KeyValueStore interface {
	// Return the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Store value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}
