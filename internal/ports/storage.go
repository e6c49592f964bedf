package ports

import (
	"context"
	"errors"
)

// KeyValueStore is the persistence provider: string values under string keys.
// Get reports a missing key with ok == false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// ErrQuotaExceeded is returned by stores that refuse a write for lack of space
var ErrQuotaExceeded = errors.New("storage quota exceeded")
