package tiercache

// Hooks lightweight callbacks for high-signal cache events. Implementations
// MUST be cheap and non-blocking; the cache calls them on hot paths. Wrap
// with hooks/async to offload a slow sink, or use hooks/prom for metrics.
type Hooks interface {
	// A Get was served, and by which tier.
	Hit(namespace string, tier Tier)

	// A Get missed both tiers.
	Miss(namespace string)

	// A remote call failed and was degraded to absent/no-op.
	// op ∈ {"ping", "get", "set", "del"}
	RemoteError(op string, err error)

	// The local tier evicted its oldest-written entry to stay within capacity.
	Evicted(storageKey string)

	// A local entry lapsed past its TTL and was removed on read.
	Expired(storageKey string)

	// An undecodable entry was deleted on read.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(storageKey, reason string)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) Hit(string, Tier)          {}
func (NopHooks) Miss(string)               {}
func (NopHooks) RemoteError(string, error) {}
func (NopHooks) Evicted(string)            {}
func (NopHooks) Expired(string)            {}
func (NopHooks) SelfHeal(string, string)   {}
