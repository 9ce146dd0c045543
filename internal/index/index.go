// Package index derives queryable collections from the full document set.
//
// Indices are always recomputed from scratch when the document set changes,
// never patched in place.
package index

import (
	"sort"

	"github.com/nathanjclark/www/internal/content"
	apperrors "github.com/nathanjclark/www/internal/errors"
)

// Index holds the derived, read-only groupings over the document set.
type Index struct {
	// All is the master sequence: publish date descending, ties broken by
	// slug ascending. The total order is deterministic so pagination and
	// neighbor links are stable across rebuilds.
	All []*content.Document

	// Tags maps tag -> documents carrying it, in master-sequence order.
	Tags map[string][]*content.Document

	// Authors maps author ID -> documents, in master-sequence order.
	Authors map[string][]*content.Document

	position map[string]int
}

// Build computes the derived indices over the full set of parsed documents.
//
// Two documents resolving to the same slug violate a whole-set invariant and
// abort with a fatal DuplicateSlug error; the parser cannot detect this since
// it sees one document at a time.
func Build(docs []*content.Document) (*Index, error) {
	claimed := make(map[string][]string, len(docs))
	for _, d := range docs {
		claimed[d.Slug] = append(claimed[d.Slug], d.SourcePath)
	}
	// Deterministic: report the lexically smallest duplicated slug.
	var dupSlugs []string
	for slug, paths := range claimed {
		if len(paths) > 1 {
			dupSlugs = append(dupSlugs, slug)
		}
	}
	if len(dupSlugs) > 0 {
		sort.Strings(dupSlugs)
		slug := dupSlugs[0]
		paths := claimed[slug]
		sort.Strings(paths)
		return nil, apperrors.DuplicateSlug(slug, paths)
	}

	all := make([]*content.Document, len(docs))
	copy(all, docs)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].Slug < all[j].Slug
	})

	idx := &Index{
		All:      all,
		Tags:     make(map[string][]*content.Document),
		Authors:  make(map[string][]*content.Document),
		position: make(map[string]int, len(all)),
	}
	for i, d := range all {
		idx.position[d.Slug] = i
		for _, tag := range d.Tags {
			idx.Tags[tag] = append(idx.Tags[tag], d)
		}
		idx.Authors[d.Author] = append(idx.Authors[d.Author], d)
	}

	return idx, nil
}

// Page returns one page of the master sequence (1-based) and whether more
// pages follow.
func (idx *Index) Page(n, size int) ([]*content.Document, bool) {
	if n < 1 || size < 1 {
		return nil, false
	}
	start := (n - 1) * size
	if start >= len(idx.All) {
		return nil, false
	}
	end := start + size
	if end > len(idx.All) {
		end = len(idx.All)
	}
	return idx.All[start:end], end < len(idx.All)
}

// Neighbors returns the adjacent documents in the master sequence: prev is
// the newer neighbor, next the older one. Either may be nil.
func (idx *Index) Neighbors(slug string) (prev, next *content.Document) {
	i, ok := idx.position[slug]
	if !ok {
		return nil, nil
	}
	if i > 0 {
		prev = idx.All[i-1]
	}
	if i+1 < len(idx.All) {
		next = idx.All[i+1]
	}
	return prev, next
}

// TagNames returns all tags in sorted order.
func (idx *Index) TagNames() []string {
	names := make([]string, 0, len(idx.Tags))
	for t := range idx.Tags {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}
