// Package logfields centralizes structured logging helpers and canonical
// attribute key names so field naming does not drift across packages.
package logfields

import "log/slog"

// Canonical log field name constants.
const (
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyKind       = "kind"
	KeyComponent  = "component"
	KeyTag        = "tag"
	KeyAuthor     = "author"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Slug(s string) slog.Attr           { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Kind(k string) slog.Attr           { return slog.String(KeyKind, k) }
func Component(name string) slog.Attr   { return slog.String(KeyComponent, name) }
func Tag(t string) slog.Attr            { return slog.String(KeyTag, t) }
func Author(a string) slog.Attr         { return slog.String(KeyAuthor, a) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
