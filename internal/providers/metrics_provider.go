package providers

import (
	"quranbot/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncPosted()
	IncSkipped(reason string)
	IncFetchFailures()
	IncPublishFailures()
	IncCacheHits()
	IncCacheMisses()
	ObserveCycleDuration(duration time.Duration)
}

type MetricsProvider struct {
	postsTotal      prometheus.Counter
	skipsTotal      *prometheus.CounterVec
	fetchFailures   prometheus.Counter
	publishFailures prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cycleDuration   prometheus.Histogram
}

func (m *MetricsProvider) IncPosted() {
	m.postsTotal.Inc()
}

func (m *MetricsProvider) IncSkipped(reason string) {
	m.skipsTotal.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) IncFetchFailures() {
	m.fetchFailures.Inc()
}

func (m *MetricsProvider) IncPublishFailures() {
	m.publishFailures.Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveCycleDuration(duration time.Duration) {
	m.cycleDuration.Observe(duration.Seconds())
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		postsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quranbot_posts_total",
			Help: "Total number of verses posted",
		}),

		skipsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "quranbot_skips_total",
			Help: "Total number of skipped posting cycles",
		}, []string{"reason"}),

		fetchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quranbot_fetch_failures_total",
			Help: "Total number of failed verse fetches",
		}),

		publishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quranbot_publish_failures_total",
			Help: "Total number of failed tweet publishes",
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quranbot_cache_hits_total",
			Help: "Total number of verse cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quranbot_cache_misses_total",
			Help: "Total number of verse cache misses",
		}),

		cycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "quranbot_cycle_duration_seconds",
			Help:    "Duration of one posting cycle in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncPosted()                           {}
func (n *noopMetrics) IncSkipped(_ string)                  {}
func (n *noopMetrics) IncFetchFailures()                    {}
func (n *noopMetrics) IncPublishFailures()                  {}
func (n *noopMetrics) IncCacheHits()                        {}
func (n *noopMetrics) IncCacheMisses()                      {}
func (n *noopMetrics) ObserveCycleDuration(_ time.Duration) {}
