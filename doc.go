// Package tiercache implements a two-tier response cache: a shared remote
// store (Redis) consulted first, shadowed by a bounded in-process store so
// that a remote outage degrades to data the process already holds. Keys are
// derived deterministically from a namespace plus a named-argument set;
// expiry is time-based in both tiers.
//
// Components:
//   - store.Remote: minimal GET / SET-with-expiry / DEL byte store (Redis
//     adapter in store/remote). Remote failures never surface to callers:
//     the cache logs them and treats the tier as absent (fail-open).
//   - store.Local: bounded in-process byte store. The default (store/local)
//     expires lazily on read and evicts the oldest-written entry when full.
//   - codec.Codec[V]: (de)serializes V <-> []byte.
//
// Keys:
//
//	cache:<namespace>:<hex sha256 over canonicalized args>
//
// Argument maps are canonicalized (sorted by name at every level) before
// hashing, so argument order never changes the key.
//
// Memoization:
//
//	lookup := tiercache.Memoize(cache, "user_props", loadUserProps)
//	v, err := lookup(ctx, tiercache.Args{"user_id": id})
package tiercache
