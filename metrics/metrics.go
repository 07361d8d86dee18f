package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xiubox/asset-manager/cache"
)

const namespace = "assetcache"

// Collector implements the cache metrics hook with Prometheus counters.
// Increments are lock-free, so it is safe to install on a cache.
type Collector struct {
	Hits       prometheus.Counter
	Misses     prometheus.Counter
	Dispatches prometheus.Counter
}

var _ cache.Metrics = (*Collector)(nil)

// New creates a Collector and registers its counters with reg. A nil reg
// registers with the default registerer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Collector{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Retrievals that found a registered entry",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Retrievals for unregistered keys",
		}),
		Dispatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Load requests dispatched to the loader",
		}),
	}
}

func (c *Collector) Hit()      { c.Hits.Inc() }
func (c *Collector) Miss()     { c.Misses.Inc() }
func (c *Collector) Dispatch() { c.Dispatches.Inc() }

// Handler returns an http.Handler serving the default registry in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
