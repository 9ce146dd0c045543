// Package content defines the parsed document model and the parser turning
// one raw content unit into it.
package content

import (
	"time"
)

// Kind tags the document variant. Articles and newsletter issues share one
// Document shape; the kind is the only variation.
type Kind string

const (
	KindArticle Kind = "article"
	KindIssue   Kind = "issue"
)

// NodeType discriminates body node variants.
type NodeType string

const (
	NodeText      NodeType = "text"
	NodeComponent NodeType = "component"
)

// Node is one entry of a document body: either a markdown text run or a
// reference to a registered presentational component. The two cases form a
// closed set discriminated by Type.
type Node struct {
	Type      NodeType `json:"type"`
	Markdown  string   `json:"markdown,omitempty"`
	Component string   `json:"component,omitempty"`
}

// Document is one parsed content unit (article or newsletter issue).
type Document struct {
	Slug        string    `json:"slug"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Cover       string    `json:"cover,omitempty"`
	Body        []Node    `json:"body"`

	// Provenance
	SourcePath  string `json:"source_path"`
	Fingerprint string `json:"fingerprint"`
}

// OutputPath returns the logical output path for the document.
func (d *Document) OutputPath() string {
	switch d.Kind {
	case KindIssue:
		return "/newsletter/" + d.Slug + "/"
	default:
		return "/blog/" + d.Slug + "/"
	}
}
