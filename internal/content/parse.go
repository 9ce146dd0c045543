package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	goslug "github.com/goliatone/go-slug"

	apperrors "github.com/nathanjclark/www/internal/errors"
	"github.com/nathanjclark/www/internal/frontmatter"
)

// header is the metadata envelope decoded from a content unit's frontmatter.
// Date is decoded loosely so the parser can report an invalid date as a
// field-level error instead of a decode failure.
type header struct {
	Title       string   `yaml:"title" toml:"title"`
	Slug        string   `yaml:"slug,omitempty" toml:"slug,omitempty"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Author      string   `yaml:"author" toml:"author"`
	Date        any      `yaml:"date" toml:"date"`
	Kind        string   `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Tags        []string `yaml:"tags,omitempty" toml:"tags,omitempty"`
	Thumbnail   string   `yaml:"thumbnail,omitempty" toml:"thumbnail,omitempty"`
	Cover       string   `yaml:"cover,omitempty" toml:"cover,omitempty"`
}

// dateLayouts are the accepted publish date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// componentDirective matches a component reference on its own line, e.g.
// `:icon{cloud}`.
var componentDirective = regexp.MustCompile(`^:icon\{([a-z][a-z0-9-]*)\}$`)

// Parse turns one raw content unit into a Document.
//
// Parsing is a pure function of the raw input: required fields are title,
// publish date, and author; tags, description, thumbnail, and cover default
// to absent. A missing or invalid required field fails this document only.
func Parse(path string, relPath string, raw []byte) (*Document, error) {
	head, body, format, err := frontmatter.Split(raw)
	if err != nil {
		return nil, apperrors.MalformedContent(path, "frontmatter", err)
	}
	if format == frontmatter.FormatNone {
		return nil, apperrors.MalformedContent(path, "frontmatter",
			fmt.Errorf("no metadata header found"))
	}

	var h header
	if err := frontmatter.Decode(head, format, &h); err != nil {
		return nil, apperrors.MalformedContent(path, "frontmatter", err)
	}

	if strings.TrimSpace(h.Title) == "" {
		return nil, apperrors.MalformedContent(path, "title", nil)
	}
	if strings.TrimSpace(h.Author) == "" {
		return nil, apperrors.MalformedContent(path, "author", nil)
	}
	date, err := parseDate(h.Date)
	if err != nil {
		return nil, apperrors.MalformedContent(path, "date", err)
	}

	slugValue, err := deriveSlug(h.Slug, relPath)
	if err != nil {
		return nil, apperrors.MalformedContent(path, "slug", err)
	}

	kind, err := deriveKind(h.Kind, relPath)
	if err != nil {
		return nil, apperrors.MalformedContent(path, "kind", err)
	}

	sum := sha256.Sum256(raw)

	return &Document{
		Slug:        slugValue,
		Kind:        kind,
		Title:       strings.TrimSpace(h.Title),
		Description: strings.TrimSpace(h.Description),
		Author:      strings.TrimSpace(h.Author),
		Date:        date,
		Tags:        normalizeTags(h.Tags),
		Thumbnail:   h.Thumbnail,
		Cover:       h.Cover,
		Body:        parseBody(body),
		SourcePath:  relPath,
		Fingerprint: hex.EncodeToString(sum[:]),
	}, nil
}

// Fingerprint computes the content fingerprint for raw input bytes without
// parsing. The orchestrator uses this for cache lookups before deciding
// whether a parse is needed at all.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// parseBody splits the markdown body into an ordered sequence of text runs
// and component references. Order is preserved exactly; a directive line
// terminates the current text run.
func parseBody(body []byte) []Node {
	var nodes []Node
	var run []string

	flush := func() {
		if len(run) == 0 {
			return
		}
		text := strings.Join(run, "\n")
		if strings.TrimSpace(text) != "" {
			nodes = append(nodes, Node{Type: NodeText, Markdown: text})
		}
		run = nil
	}

	for _, line := range strings.Split(string(body), "\n") {
		if m := componentDirective.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			nodes = append(nodes, Node{Type: NodeComponent, Component: m[1]})
			continue
		}
		run = append(run, line)
	}
	flush()

	return nodes
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("publish date is required")
	case time.Time:
		if d.IsZero() {
			return time.Time{}, fmt.Errorf("publish date is required")
		}
		return d.UTC(), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, fmt.Errorf("publish date is required")
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable publish date %q", s)
	default:
		return time.Time{}, fmt.Errorf("publish date has unexpected type %T", v)
	}
}

// deriveSlug uses the explicit slug field when present, otherwise derives
// deterministically from the source path's file name stem.
func deriveSlug(explicit, relPath string) (string, error) {
	candidate := strings.TrimSpace(explicit)
	if candidate == "" {
		base := filepath.Base(relPath)
		candidate = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if candidate == "" {
		return "", fmt.Errorf("cannot derive slug from %q", relPath)
	}
	normalized, err := goslug.Normalize(candidate)
	if err != nil {
		return "", err
	}
	return normalized, nil
}

// deriveKind uses the explicit kind field when present, otherwise the first
// path segment: content under newsletter/ is an issue, everything else an
// article.
func deriveKind(explicit, relPath string) (Kind, error) {
	switch strings.TrimSpace(explicit) {
	case "":
	case string(KindArticle):
		return KindArticle, nil
	case string(KindIssue):
		return KindIssue, nil
	default:
		return "", fmt.Errorf("unknown kind %q", explicit)
	}

	segments := strings.Split(filepath.ToSlash(relPath), "/")
	if len(segments) > 1 && segments[0] == "newsletter" {
		return KindIssue, nil
	}
	return KindArticle, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
