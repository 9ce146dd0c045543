package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncDocumentResult(ResultSuccess)
	pr.IncCacheHit()
	pr.IncCacheMiss()
	pr.IncComponentResolved("cloud")
	pr.SetWorkerCount(4)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveBuildDuration(time.Second)
	r.IncDocumentResult(ResultExcluded)
	r.IncCacheHit()
	r.IncCacheMiss()
	r.IncComponentResolved("moon")
	r.SetWorkerCount(1)
}
