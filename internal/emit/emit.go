// Package emit writes build outputs consumed by the static-site emitter:
// the manifest itself, a sitemap, and the RSS feed.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathanjclark/www/internal/manifest"
)

// WriteManifest serializes the manifest to <dir>/manifest.json.
func WriteManifest(dir string, m *manifest.Manifest) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0o644)
}

// Sitemap renders a plain-text sitemap: one absolute URL per line, document
// pages first, then index pages, each group sorted for stable output.
func Sitemap(m *manifest.Manifest, baseURL string) []byte {
	base := strings.TrimRight(baseURL, "/")

	paths := make([]string, 0, len(m.Entries))
	for p := range m.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString(base + "/\n")
	for _, p := range paths {
		b.WriteString(base + p + "\n")
	}
	for _, p := range m.Indexes.TagPaths {
		b.WriteString(base + p + "\n")
	}
	for _, p := range m.Indexes.AuthorPaths {
		b.WriteString(base + p + "\n")
	}
	return []byte(b.String())
}

// WriteSitemap writes the sitemap to <dir>/sitemap.txt.
func WriteSitemap(dir string, m *manifest.Manifest, baseURL string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "sitemap.txt"), Sitemap(m, baseURL), 0o644)
}
