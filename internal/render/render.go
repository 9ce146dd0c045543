// Package render resolves a document body against the component registry and
// produces a fully-resolved render tree.
package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/nathanjclark/www/internal/components"
	"github.com/nathanjclark/www/internal/content"
	apperrors "github.com/nathanjclark/www/internal/errors"
)

// FragmentType discriminates resolved fragment variants.
type FragmentType string

const (
	FragmentHTML      FragmentType = "html"
	FragmentComponent FragmentType = "component"
)

// Fragment is one resolved entry of a render tree: rendered HTML from a
// markdown text run, or a resolved component artifact.
type Fragment struct {
	Type      FragmentType `json:"type"`
	HTML      string       `json:"html,omitempty"`
	Component string       `json:"component,omitempty"`
	SVG       string       `json:"svg,omitempty"`
}

// Tree is the fully-resolved render output for one document. It is
// self-contained: fragments hold copies, never references back into the
// source document.
type Tree struct {
	Slug      string     `json:"slug"`
	Fragments []Fragment `json:"fragments"`
	Hash      string     `json:"hash"`
}

// markdown is the shared converter. Goldmark converters are safe for
// concurrent use.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Resolve walks the document body in source order and resolves every
// component reference through the registry.
//
// Resolution is a pure function of (body, registry): the same inputs yield a
// byte-identical tree. An unknown component fails the whole document; no
// partial tree is ever returned.
func Resolve(doc *content.Document, registry *components.Registry) (*Tree, error) {
	fragments := make([]Fragment, 0, len(doc.Body))

	for _, node := range doc.Body {
		switch node.Type {
		case content.NodeText:
			var buf bytes.Buffer
			if err := markdown.Convert([]byte(node.Markdown), &buf); err != nil {
				return nil, apperrors.Wrap(err, apperrors.CategoryContent, apperrors.SeverityError,
					fmt.Sprintf("render markdown for %q", doc.Slug))
			}
			fragments = append(fragments, Fragment{Type: FragmentHTML, HTML: buf.String()})
		case content.NodeComponent:
			renderer, err := registry.Resolve(doc.Slug, node.Component)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, Fragment{
				Type:      FragmentComponent,
				Component: node.Component,
				SVG:       renderer.Render(),
			})
		default:
			return nil, apperrors.New(apperrors.CategoryInternal, apperrors.SeverityError,
				fmt.Sprintf("unknown body node type %q in %q", node.Type, doc.Slug))
		}
	}

	return &Tree{
		Slug:      doc.Slug,
		Fragments: fragments,
		Hash:      hashFragments(fragments),
	}, nil
}

// hashFragments computes a deterministic hash over fragments in order.
func hashFragments(fragments []Fragment) string {
	h := sha256.New()
	for _, f := range fragments {
		fmt.Fprintf(h, "%s|%s|%s|%s\n", f.Type, f.HTML, f.Component, f.SVG)
	}
	return hex.EncodeToString(h.Sum(nil))
}
