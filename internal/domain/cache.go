package domain

import (
	"context"
	"time"
)

type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned unwrapped by Cache.Get for absent keys.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache stores the serialized stats snapshots and dictionary entries.
// Values are opaque strings; callers own the encoding.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set with an expiration of 0 keeps the key until it is deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete ignores missing keys.
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
