package tiercache

import (
	"context"
	"time"

	cd "github.com/propsvc/tiercache/codec"
	st "github.com/propsvc/tiercache/store"
)

// Args is the named-argument set a cache key is derived from. Values must be
// JSON-representable (scalars, strings, nested maps/slices of the same);
// anything else makes the key underivable and fails with *KeyEncodingError.
type Args map[string]any

// Tier identifies which backing store served a hit.
type Tier string

const (
	TierLocal  Tier = "local"
	TierRemote Tier = "remote"
)

// Stats is a read-only snapshot of the cache for observability.
type Stats struct {
	LocalSize       int           `json:"local_size"`
	LocalCapacity   int           `json:"local_capacity"`
	TTL             time.Duration `json:"ttl"`
	RemoteConnected bool          `json:"remote_connected"`
}

// Cache is the two-tier cache API. V is the caller's value type;
// serialization is handled by a pluggable Codec[V].
//
// Get and Delete return an error only for caller input (key encoding);
// backing-store failures are absorbed and degrade to a miss/no-op.
type Cache[V any] interface {
	// Get returns the cached value for (namespace, args). The remote tier
	// is consulted first; a remote miss or outage falls through to the
	// local tier with its lazy-expiry rule.
	Get(ctx context.Context, namespace string, args Args) (v V, ok bool, err error)

	// Set writes value to the remote tier (best effort, native TTL) and
	// unconditionally to the local tier, applying its eviction rule.
	Set(ctx context.Context, namespace string, value V, args Args) error

	// Delete removes the entry from both tiers. Remote failures are swallowed.
	Delete(ctx context.Context, namespace string, args Args) error

	// Clear drops the local tier only; remote entries lapse on their own TTL
	// (the minimal remote contract has no bulk clear).
	Clear()

	Stats() Stats
	Close(ctx context.Context) error
}

// Options tune the cache. All fields have usable defaults; a zero Options
// yields a local-only cache with a 5 minute TTL and 10000 entries.
// Negative TTL or MaxLocalEntries fail construction with *ConfigError.
type Options[V any] struct {
	TTL             time.Duration // per-entry lifetime, both tiers; 0 => 5m
	MaxLocalEntries int           // local tier capacity; 0 => 10000

	Remote      st.Remote // nil => local-only cache
	CloseRemote bool      // set true only if the cache exclusively owns Remote

	Local st.Local    // nil => bounded oldest-insertion store (store/local)
	Codec cd.Codec[V] // nil => codec.JSON[V]

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks

	ProbeTimeout time.Duration    // remote liveness probe at construction; 0 => 5s
	Clock        func() time.Time // test seam; nil => time.Now
}

// New builds a Cache. When Remote is configured, a liveness probe runs once:
// on failure the remote tier is marked unavailable for the process lifetime
// and the cache operates local-only (degraded, not an error).
func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
