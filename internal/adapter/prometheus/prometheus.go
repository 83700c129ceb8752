package prometheus

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

const appName = "pco_wrapper"

type PrometheusAdapter struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	cacheOpsTotal       *prometheus.CounterVec
}

func NewPrometheusAdapter() ports.MetricsPort {
	adapter := &PrometheusAdapter{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status", "app_name"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_seconds",
				Help:    "Duration API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method", "status", "app_name"},
		),
		cacheOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Cache hits, misses, sets and evictions by key prefix",
			},
			[]string{"operation", "prefix", "app_name"},
		),
	}

	prometheus.MustRegister(adapter.httpRequestsTotal)
	prometheus.MustRegister(adapter.httpRequestDuration)
	prometheus.MustRegister(adapter.cacheOpsTotal)

	adapter.httpRequestsTotal.WithLabelValues("/health", "GET", "200", appName).Add(0)
	return adapter
}

func (p *PrometheusAdapter) IncrementCounter(name string, labels map[string]string) {
	p.httpRequestsTotal.WithLabelValues(
		labels["path"],
		labels["method"],
		labels["status"],
		appName,
	).Inc()
}

func (p *PrometheusAdapter) RecordDuration(name string, duration time.Duration, labels map[string]string) {
	p.httpRequestDuration.WithLabelValues(
		labels["path"],
		labels["method"],
		labels["status"],
		appName,
	).Observe(duration.Seconds())
}

func (p *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	status := fmt.Sprintf("%d", c.Writer.Status())
	labels := map[string]string{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
		"status": status,
	}

	p.IncrementCounter("http_requests_total", labels)
	p.RecordDuration("api_request_duration_seconds", time.Since(start), labels)
}

func (p *PrometheusAdapter) CacheHit(prefix string) {
	p.cacheOpsTotal.WithLabelValues("hit", prefix, appName).Inc()
}

func (p *PrometheusAdapter) CacheMiss(prefix string) {
	p.cacheOpsTotal.WithLabelValues("miss", prefix, appName).Inc()
}

func (p *PrometheusAdapter) CacheSet(prefix string) {
	p.cacheOpsTotal.WithLabelValues("set", prefix, appName).Inc()
}

func (p *PrometheusAdapter) CacheEviction(prefix string) {
	p.cacheOpsTotal.WithLabelValues("eviction", prefix, appName).Inc()
}
