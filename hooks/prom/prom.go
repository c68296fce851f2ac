// Package promhook exports cache events as Prometheus metrics: per-call
// hit/miss counts with the serving tier, remote-tier failures by operation,
// and local-tier churn.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/propsvc/tiercache"
)

type Hooks struct {
	hits         *prometheus.CounterVec
	misses       *prometheus.CounterVec
	remoteErrors *prometheus.CounterVec
	evictions    prometheus.Counter
	expiries     prometheus.Counter
	selfHeals    *prometheus.CounterVec
}

var _ tiercache.Hooks = (*Hooks)(nil)

// New creates and registers all collectors with the given registerer.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tiercache",
			Name:      "hits_total",
			Help:      "Total cache hits by namespace and serving tier.",
		}, []string{"namespace", "tier"}),

		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tiercache",
			Name:      "misses_total",
			Help:      "Total cache misses by namespace.",
		}, []string{"namespace"}),

		remoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tiercache",
			Name:      "remote_errors_total",
			Help:      "Total remote-tier failures degraded to misses, by operation.",
		}, []string{"op"}),

		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tiercache",
			Name:      "local_evictions_total",
			Help:      "Total local-tier capacity evictions.",
		}),

		expiries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tiercache",
			Name:      "local_expiries_total",
			Help:      "Total local-tier entries removed by lazy expiry.",
		}),

		selfHeals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tiercache",
			Name:      "self_heals_total",
			Help:      "Total undecodable entries deleted on read, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		h.hits,
		h.misses,
		h.remoteErrors,
		h.evictions,
		h.expiries,
		h.selfHeals,
	)

	return h
}

func (h *Hooks) Hit(namespace string, tier tiercache.Tier) {
	h.hits.WithLabelValues(namespace, string(tier)).Inc()
}

func (h *Hooks) Miss(namespace string) {
	h.misses.WithLabelValues(namespace).Inc()
}

func (h *Hooks) RemoteError(op string, _ error) {
	h.remoteErrors.WithLabelValues(op).Inc()
}

func (h *Hooks) Evicted(string) {
	h.evictions.Inc()
}

func (h *Hooks) Expired(string) {
	h.expiries.Inc()
}

func (h *Hooks) SelfHeal(_, reason string) {
	h.selfHeals.WithLabelValues(reason).Inc()
}
