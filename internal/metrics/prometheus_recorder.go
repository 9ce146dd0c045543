package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once               sync.Once
	buildDuration      prom.Histogram
	documentResults    *prom.CounterVec
	cacheLookups       *prom.CounterVec
	componentsResolved *prom.CounterVec
	workerCount        prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitebuild",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.documentResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuild",
			Name:      "document_results_total",
			Help:      "Per-document outcomes by result",
		}, []string{"result"})
		pr.cacheLookups = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuild",
			Name:      "cache_lookups_total",
			Help:      "Fingerprint cache lookups by outcome",
		}, []string{"outcome"})
		pr.componentsResolved = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuild",
			Name:      "components_resolved_total",
			Help:      "Component references resolved by component name",
		}, []string{"component"})
		pr.workerCount = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitebuild",
			Name:      "worker_count",
			Help:      "Configured document worker count for the last build",
		})
		reg.MustRegister(pr.buildDuration, pr.documentResults, pr.cacheLookups,
			pr.componentsResolved, pr.workerCount)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	if p == nil || p.documentResults == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncCacheHit() {
	if p == nil || p.cacheLookups == nil {
		return
	}
	p.cacheLookups.WithLabelValues("hit").Inc()
}

func (p *PrometheusRecorder) IncCacheMiss() {
	if p == nil || p.cacheLookups == nil {
		return
	}
	p.cacheLookups.WithLabelValues("miss").Inc()
}

func (p *PrometheusRecorder) IncComponentResolved(name string) {
	if p == nil || p.componentsResolved == nil {
		return
	}
	p.componentsResolved.WithLabelValues(name).Inc()
}

func (p *PrometheusRecorder) SetWorkerCount(n int) {
	if p == nil || p.workerCount == nil {
		return
	}
	p.workerCount.Set(float64(n))
}
