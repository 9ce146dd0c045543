// Package cache provides the fingerprint-keyed manifest entry cache that
// backs incremental rebuilds.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nathanjclark/www/internal/logfields"
	"github.com/nathanjclark/www/internal/manifest"
)

// ErrMiss is returned when no valid cache entry exists for a slug.
var ErrMiss = errors.New("cache miss")

// record is the on-disk cache entry: the stored fingerprint plus the manifest
// entry it produced.
type record struct {
	Fingerprint string         `json:"fingerprint"`
	Entry       manifest.Entry `json:"entry"`
}

// Store is a filesystem-backed fingerprint cache, one JSON file per slug:
//
//	.buildcache/
//	  entries/
//	    <slug>.json
//
// A cache entry is valid if and only if its stored fingerprint equals the
// current content fingerprint; any mismatch forces full re-resolution of
// that document. Lookup and Save are safe for concurrent use across slugs.
type Store struct {
	dir    string
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewStore opens (creating if needed) a cache store rooted at dir.
func NewStore(dir string) (*Store, error) {
	entriesDir := filepath.Join(dir, "entries")
	if err := os.MkdirAll(entriesDir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory %s: %w", entriesDir, err)
	}
	return &Store{dir: dir, logger: slog.Default()}, nil
}

// WithLogger sets a custom logger.
func (s *Store) WithLogger(logger *slog.Logger) *Store {
	s.logger = logger
	return s
}

// Lookup returns the cached manifest entry for slug if its stored
// fingerprint matches exactly. Any other outcome is ErrMiss.
func (s *Store) Lookup(slug, fingerprint string) (manifest.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.entryPath(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return manifest.Entry{}, ErrMiss
		}
		return manifest.Entry{}, fmt.Errorf("read cache entry %s: %w", slug, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt entries behave like misses; the rebuild overwrites them.
		s.logger.Warn("Discarding corrupt cache entry", logfields.Slug(slug), logfields.Error(err))
		return manifest.Entry{}, ErrMiss
	}

	if rec.Fingerprint != fingerprint {
		return manifest.Entry{}, ErrMiss
	}
	return rec.Entry, nil
}

// Save stores a manifest entry keyed by its slug and fingerprint,
// overwriting any previous entry for the slug.
func (s *Store) Save(entry manifest.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record{Fingerprint: entry.Fingerprint, Entry: entry})
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", entry.Slug, err)
	}
	if err := os.WriteFile(s.entryPath(entry.Slug), data, 0o600); err != nil {
		return fmt.Errorf("write cache entry %s: %w", entry.Slug, err)
	}
	return nil
}

// Snapshot loads every valid cache entry, keyed by source path. The
// orchestrator uses this to match incoming raw files to prior work before
// any parsing happens.
func (s *Store) Snapshot() (map[string]manifest.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entriesDir := filepath.Join(s.dir, "entries")
	snapshot := make(map[string]manifest.Entry)
	err := filepath.WalkDir(entriesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			s.logger.Warn("Skipping corrupt cache entry",
				logfields.Path(path), logfields.Error(err))
			return nil
		}
		snapshot[rec.Entry.SourcePath] = rec.Entry
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot cache: %w", err)
	}
	return snapshot, nil
}

// Prune removes entries for slugs no longer present in the content set.
func (s *Store) Prune(live map[string]struct{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entriesDir := filepath.Join(s.dir, "entries")
	return filepath.WalkDir(entriesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		slug := strings.TrimSuffix(d.Name(), ".json")
		if _, ok := live[slug]; ok {
			return nil
		}
		s.logger.Debug("Pruning stale cache entry", logfields.Slug(slug))
		return os.Remove(path)
	})
}

// Clear removes every cached entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entriesDir := filepath.Join(s.dir, "entries")
	if err := os.RemoveAll(entriesDir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return os.MkdirAll(entriesDir, 0o750)
}

func (s *Store) entryPath(slug string) string {
	return filepath.Join(s.dir, "entries", slug+".json")
}
