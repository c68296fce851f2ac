// Package asynchook decouples hook sinks from the cache's hot paths with a
// bounded queue; events are dropped rather than blocking when the queue is
// full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{HitEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := tiercache.New[Props](tiercache.Options[Props]{
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/propsvc/tiercache"
)

type Hooks struct {
	inner tiercache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ tiercache.Hooks = (*Hooks)(nil)

func New(inner tiercache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(ns string, tier tiercache.Tier) { h.try(func() { h.inner.Hit(ns, tier) }) }
func (h *Hooks) Miss(ns string)                     { h.try(func() { h.inner.Miss(ns) }) }
func (h *Hooks) RemoteError(op string, err error)   { h.try(func() { h.inner.RemoteError(op, err) }) }
func (h *Hooks) Evicted(k string)                   { h.try(func() { h.inner.Evicted(k) }) }
func (h *Hooks) Expired(k string)                   { h.try(func() { h.inner.Expired(k) }) }
func (h *Hooks) SelfHeal(k, reason string)          { h.try(func() { h.inner.SelfHeal(k, reason) }) }
