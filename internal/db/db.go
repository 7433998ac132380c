package db

import (
	"context"
	"time"
)

// Store is the storage facade used by the composition root.
// Repositories depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	JSONStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONStore provides JSON document operations.
type JSONStore interface {
	// JSONSet writes data at path ("$" for the whole document).
	JSONSet(ctx context.Context, key, path string, data []byte) error
	// JSONGet returns the document, or the given paths of it.
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	// JSONGetMulti fetches whole documents in one round-trip.
	// Missing keys yield nil entries.
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	// JSONNumIncrBy adds n to the number at path and returns the new value.
	JSONNumIncrBy(ctx context.Context, key, path string, n int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrBy(ctx context.Context, key string, val int64) error
	// Expire sets a TTL on key; with nx it only applies when the key has none.
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
