// Package metrics defines observability hooks for the build pipeline.
package metrics

import "time"

// ResultLabel enumerates per-document outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultExcluded ResultLabel = "excluded"
	ResultCached   ResultLabel = "cached"
)

// Recorder defines observability hooks for build and document metrics.
// Implementations may forward to Prometheus or stay in-process. All methods
// must be safe on the zero NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncDocumentResult(result ResultLabel)
	IncCacheHit()
	IncCacheMiss()
	IncComponentResolved(name string)
	SetWorkerCount(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncDocumentResult(ResultLabel)      {}
func (NoopRecorder) IncCacheHit()                       {}
func (NoopRecorder) IncCacheMiss()                      {}
func (NoopRecorder) IncComponentResolved(string)        {}
func (NoopRecorder) SetWorkerCount(int)                 {}
