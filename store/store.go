// Package store defines the two tier abstractions the cache orchestrates.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed so that the bytes returned by Get are identical to the bytes
// provided to Set.
//
// The "cache:" keyspace is owned by tiercache. External code MUST NOT write
// values under this prefix in a shared store; foreign writes are treated as
// corruption by wire validation and deleted on read.
package store

import (
	"context"
	"time"
)

// Local is the in-process tier: a bounded key-value store with per-entry
// insertion timestamps. All operations are pure data-structure operations
// (no I/O) and must be safe for concurrent use. The caller supplies the
// current time so expiry decisions stay deterministic under test.
type Local interface {
	// Get returns the stored value when present and not yet expired.
	// An expired entry is removed (lazy expiry) and reported as a miss.
	Get(key string, now time.Time) ([]byte, bool)

	// Set stores value, evicting per the implementation's capacity rule
	// when the store is full.
	Set(key string, value []byte, now time.Time)

	Delete(key string)
	Clear()
	Len() int
}

// Remote is the shared tier: a minimal byte store with native expiry
// (GET / SET-with-TTL / DEL). Implementations must be safe for concurrent
// use and return transport errors to the caller; the cache owns the
// fail-open policy around them.
type Remote interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// IO/remote errors return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL using the store's native expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Ping is the liveness probe used once at cache construction.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
