package tiercache

import (
	"context"
	"fmt"
	"time"

	cd "github.com/propsvc/tiercache/codec"
	"github.com/propsvc/tiercache/internal/wire"
	st "github.com/propsvc/tiercache/store"
	"github.com/propsvc/tiercache/store/local"
)

const (
	defaultTTL          = 5 * time.Minute
	defaultMaxEntries   = 10000
	defaultProbeTimeout = 5 * time.Second
)

// remoteState tracks the remote tier's connection lifecycle. Unavailable is
// terminal: the initial probe is never retried, a process restart is
// required to reconnect. Transient per-call errors do not change state.
type remoteState int

const (
	remoteUnconfigured remoteState = iota
	remoteConnected
	remoteUnavailable
)

type cache[V any] struct {
	ttl   time.Duration
	cap   int
	codec cd.Codec[V]
	log   Logger
	hooks Hooks
	now   func() time.Time

	local st.Local

	remote      st.Remote
	state       remoteState
	closeRemote bool
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.TTL < 0 {
		return nil, &ConfigError{Field: "TTL", Reason: "must be positive"}
	}
	if opts.MaxLocalEntries < 0 {
		return nil, &ConfigError{Field: "MaxLocalEntries", Reason: "must be positive"}
	}

	c := &cache[V]{
		ttl: coalesce(opts.TTL, defaultTTL),
		cap: coalesce(opts.MaxLocalEntries, defaultMaxEntries),
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if opts.Clock != nil {
		c.now = opts.Clock
	} else {
		c.now = time.Now
	}
	if opts.Codec != nil {
		c.codec = opts.Codec
	} else {
		c.codec = cd.JSON[V]{}
	}

	if opts.Local != nil {
		c.local = opts.Local
	} else {
		c.local = local.New(local.Config{
			TTL:        c.ttl,
			MaxEntries: c.cap,
			OnEvict:    func(key string) { c.hooks.Evicted(key) },
			OnExpire:   func(key string) { c.hooks.Expired(key) },
		})
	}

	if opts.Remote != nil {
		c.remote = opts.Remote
		c.closeRemote = opts.CloseRemote
		ctx, cancel := context.WithTimeout(context.Background(), coalesce(opts.ProbeTimeout, defaultProbeTimeout))
		err := c.remote.Ping(ctx)
		cancel()
		if err != nil {
			c.state = remoteUnavailable
			c.log.Warn("remote store unreachable, running local-only", Fields{"err": err})
			c.hooks.RemoteError("ping", err)
		} else {
			c.state = remoteConnected
			c.log.Info("remote store connected", nil)
		}
	}

	return c, nil
}

func (c *cache[V]) Get(ctx context.Context, namespace string, args Args) (V, bool, error) {
	var zero V
	key, err := encodeKey(namespace, args)
	if err != nil {
		return zero, false, err
	}

	if c.state == remoteConnected {
		if payload, ok := c.remoteGet(ctx, key); ok {
			v, err := c.codec.Decode(payload)
			if err == nil {
				c.log.Debug("remote hit", Fields{"ns": namespace})
				c.hooks.Hit(namespace, TierRemote)
				return v, true, nil
			}
			// undecodable value in the shared store; drop it and fall through
			c.remoteDel(ctx, key)
			c.hooks.SelfHeal(key, "value_decode")
		}
	}

	if payload, ok := c.local.Get(key, c.now()); ok {
		v, err := c.codec.Decode(payload)
		if err == nil {
			c.log.Debug("local hit", Fields{"ns": namespace})
			c.hooks.Hit(namespace, TierLocal)
			return v, true, nil
		}
		c.local.Delete(key)
		c.hooks.SelfHeal(key, "value_decode")
	}

	c.log.Debug("miss", Fields{"ns": namespace})
	c.hooks.Miss(namespace)
	return zero, false, nil
}

func (c *cache[V]) Set(ctx context.Context, namespace string, value V, args Args) error {
	key, err := encodeKey(namespace, args)
	if err != nil {
		return err
	}
	payload, err := c.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("tiercache: encode value for namespace %q: %w", namespace, err)
	}

	if c.state == remoteConnected {
		c.remoteSet(ctx, key, wire.EncodeEntry(payload))
	}
	// Shadow write: the local tier always holds the latest value, so a
	// remote outage degrades to data already resident here (within TTL).
	c.local.Set(key, payload, c.now())
	c.log.Debug("cached", Fields{"ns": namespace})
	return nil
}

func (c *cache[V]) Delete(ctx context.Context, namespace string, args Args) error {
	key, err := encodeKey(namespace, args)
	if err != nil {
		return err
	}
	if c.state == remoteConnected {
		c.remoteDel(ctx, key)
	}
	c.local.Delete(key)
	return nil
}

func (c *cache[V]) Clear() {
	c.local.Clear()
	c.log.Info("local cache cleared", nil)
}

func (c *cache[V]) Stats() Stats {
	return Stats{
		LocalSize:       c.local.Len(),
		LocalCapacity:   c.cap,
		TTL:             c.ttl,
		RemoteConnected: c.state == remoteConnected,
	}
}

func (c *cache[V]) Close(ctx context.Context) error {
	if c.remote != nil && c.closeRemote {
		return c.remote.Close()
	}
	return nil
}

// remoteGet is the fail-open boundary around the remote tier: transport
// errors (including caller cancellation) and corrupt entries degrade to a
// miss, never to an error the caller sees.
func (c *cache[V]) remoteGet(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := c.remote.Get(ctx, key)
	if err != nil {
		c.log.Warn("remote get failed", Fields{"key": key, "err": err})
		c.hooks.RemoteError("get", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	payload, err := wire.DecodeEntry(raw)
	if err != nil {
		// foreign or truncated bytes under our keyspace; delete on sight
		c.remoteDel(ctx, key)
		c.hooks.SelfHeal(key, "corrupt")
		return nil, false
	}
	return payload, true
}

func (c *cache[V]) remoteSet(ctx context.Context, key string, raw []byte) {
	if err := c.remote.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn("remote set failed", Fields{"key": key, "err": err})
		c.hooks.RemoteError("set", err)
	}
}

func (c *cache[V]) remoteDel(ctx context.Context, key string) {
	if err := c.remote.Del(ctx, key); err != nil {
		c.log.Warn("remote delete failed", Fields{"key": key, "err": err})
		c.hooks.RemoteError("del", err)
	}
}
