// Package manifest defines the build's final output: the mapping from
// logical output paths to resolved render trees.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/nathanjclark/www/internal/render"
)

// Manifest is a complete record of one build's output. A manifest is created
// fresh per build and superseded, never merged, by the next build.
type Manifest struct {
	ID          string           `json:"id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Entries     map[string]Entry `json:"entries"`
	Indexes     IndexSummary     `json:"indexes"`
	Stats       Stats            `json:"stats"`
}

// Entry is one output page. Each entry is self-contained: the render tree is
// an owned copy with no references back into source documents.
type Entry struct {
	Path        string       `json:"path"`
	Slug        string       `json:"slug"`
	Kind        string       `json:"kind"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Author      string       `json:"author"`
	Date        time.Time    `json:"date"`
	Tags        []string     `json:"tags,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	Cover       string       `json:"cover,omitempty"`
	SourcePath  string       `json:"source_path"`
	Fingerprint string       `json:"fingerprint"`
	RenderHash  string       `json:"render_hash"`
	Tree        *render.Tree `json:"tree"`
}

// IndexSummary records the derived index pages emitted alongside documents.
type IndexSummary struct {
	TagPaths    []string `json:"tag_paths,omitempty"`
	AuthorPaths []string `json:"author_paths,omitempty"`
	FeedPages   int      `json:"feed_pages"`
}

// Stats captures build-level counters for the report.
type Stats struct {
	Documents   int   `json:"documents"`
	Excluded    int   `json:"excluded"`
	CacheHits   int   `json:"cache_hits"`
	CacheMisses int   `json:"cache_misses"`
	DurationMS  int64 `json:"duration_ms"`
}

// New creates an empty manifest with the given build ID.
func New(id string, now time.Time) *Manifest {
	return &Manifest{
		ID:          id,
		GeneratedAt: now.UTC(),
		Entries:     make(map[string]Entry),
	}
}

// Add records an entry under its output path.
func (m *Manifest) Add(e Entry) {
	m.Entries[e.Path] = e
}

// ToJSON serializes the manifest to indented JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash over the manifest's entries. Two builds
// over identical content produce identical hashes regardless of build ID or
// timestamp.
func (m *Manifest) Hash() string {
	paths := make([]string, 0, len(m.Entries))
	for p := range m.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	h := sha256.New()
	for _, p := range paths {
		e := m.Entries[p]
		fmt.Fprintf(h, "%s|%s|%s|%s\n", e.Path, e.Slug, e.Fingerprint, e.RenderHash)
	}
	return hex.EncodeToString(h.Sum(nil))
}
