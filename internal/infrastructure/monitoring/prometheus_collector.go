package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CacheCollector exports content-cache behavior. It satisfies the cache
// package's Metrics interface.
type CacheCollector struct {
	hits          *prometheus.CounterVec
	misses        prometheus.Counter
	expirations   prometheus.Counter
	storeErrors   *prometheus.CounterVec
	memoryEntries prometheus.Gauge
}

func NewCacheCollector() *CacheCollector {
	return &CacheCollector{
		hits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhub_cache_hits_total",
			Help: "Cache hits by tier (memory or durable)",
		}, []string{"tier"}),

		misses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clubhub_cache_misses_total",
			Help: "Cache misses across both tiers",
		}),

		expirations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clubhub_cache_expirations_total",
			Help: "Entries found expired at read time and removed",
		}),

		storeErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhub_cache_store_errors_total",
			Help: "Durable store failures by operation, degraded rather than propagated",
		}, []string{"op"}),

		memoryEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "clubhub_cache_memory_entries",
			Help: "Current number of memory-tier entries",
		}),
	}
}

func (c *CacheCollector) Hit(tier string) {
	c.hits.WithLabelValues(tier).Inc()
}

func (c *CacheCollector) Miss() {
	c.misses.Inc()
}

func (c *CacheCollector) Expired() {
	c.expirations.Inc()
}

func (c *CacheCollector) StoreError(op string) {
	c.storeErrors.WithLabelValues(op).Inc()
}

func (c *CacheCollector) SetMemoryEntries(n int) {
	c.memoryEntries.Set(float64(n))
}

// UpstreamCollector exports remote content API fetch outcomes.
type UpstreamCollector struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewUpstreamCollector() *UpstreamCollector {
	return &UpstreamCollector{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhub_upstream_requests_total",
			Help: "Remote content API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),

		duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clubhub_upstream_request_duration_seconds",
			Help:    "Remote content API request duration",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
	}
}

func (c *UpstreamCollector) Observe(endpoint string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.requests.WithLabelValues(endpoint, outcome).Inc()
	c.duration.Observe(seconds)
}
