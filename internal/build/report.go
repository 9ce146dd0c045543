package build

import (
	"time"

	"github.com/nathanjclark/www/internal/index"
	"github.com/nathanjclark/www/internal/manifest"
)

// DocumentError records one excluded document and why.
type DocumentError struct {
	Path string `json:"path"`
	Slug string `json:"slug,omitempty"` // empty when parsing never got that far
	Err  error  `json:"error"`
}

// Report accompanies the manifest: per-document errors are collected here
// instead of aborting unrelated work.
type Report struct {
	Errors      []DocumentError
	CacheHits   int
	CacheMisses int
	Duration    time.Duration
}

// Failed reports whether any document was excluded.
func (r *Report) Failed() bool {
	return len(r.Errors) > 0
}

// Result is the outcome of a successful build: a manifest, the derived
// indices, and the report of excluded documents (possibly empty).
type Result struct {
	Manifest *manifest.Manifest
	Index    *index.Index
	Report   Report
}
