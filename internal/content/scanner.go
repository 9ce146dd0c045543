package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/nathanjclark/www/internal/errors"
	"github.com/nathanjclark/www/internal/logfields"
)

// Source is one raw content unit discovered on disk, before parsing.
type Source struct {
	Path    string // Absolute path to the file
	RelPath string // Path relative to the content directory
	Raw     []byte // File content
}

// Scanner discovers raw content units under a content directory.
type Scanner struct {
	dir        string
	extensions map[string]struct{}
}

// NewScanner creates a scanner for the given content directory. Extensions
// are matched case-insensitively and must include the leading dot.
func NewScanner(dir string, extensions []string) *Scanner {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{dir: dir, extensions: extSet}
}

// Scan walks the content directory and loads every matching file. Results
// are ordered by relative path so downstream work is deterministic. Hidden
// files and directories (dot-prefixed) are skipped.
func (s *Scanner) Scan() ([]Source, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryBuild, apperrors.SeverityFatal, "resolve content dir")
	}

	var sources []Source
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Raw:     raw,
		})
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryBuild, apperrors.SeverityFatal, "walk content dir")
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].RelPath < sources[j].RelPath
	})

	slog.Debug("Content scan complete", logfields.Path(root), logfields.Count(len(sources)))
	return sources, nil
}
