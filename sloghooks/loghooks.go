// Package sloghooks logs cache events through log/slog with optional
// sampling, for services that want hit/miss visibility without a metrics
// stack.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/propsvc/tiercache"
)

type Options struct {
	// Sampling to avoid floods on hot paths; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional key redactor. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ tiercache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(namespace string, tier tiercache.Tier) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("tiercache.hit",
		"ns", namespace,
		"tier", string(tier))
}

func (h *Hooks) Miss(namespace string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("tiercache.miss", "ns", namespace)
}

func (h *Hooks) RemoteError(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("tiercache.remote_error",
		"op", op,
		"err", err)
}

func (h *Hooks) Evicted(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Debug("tiercache.evicted", "key", h.redact(storageKey))
}

func (h *Hooks) Expired(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Debug("tiercache.expired", "key", h.redact(storageKey))
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil {
		return
	}
	h.l.Info("tiercache.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}
