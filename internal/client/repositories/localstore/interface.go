package localstore

import (
	"context"
	"time"
)

// Repository is a key/value "local storage" whose entries may expire.
//
// Get returns (nil, nil) for absent or expired keys. A zero expiresAt passed
// to Set stores the value without an expiry. Atomic runs fn against a
// repository whose writes commit together or not at all.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Purge(ctx context.Context) (int64, error)
	Atomic(ctx context.Context, fn func(tx Repository) error) error
}
