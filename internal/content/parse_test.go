package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/nathanjclark/www/internal/errors"
)

const validArticle = `---
title: Shipping a Side Project
author: nathan
date: 2023-08-28
tags:
  - go
  - shipping
description: Notes on finishing things.
---
Intro paragraph.

:icon{rocket}

Closing paragraph.
`

func TestParse_ValidArticle(t *testing.T) {
	doc, err := Parse("/content/blog/shipping.md", "blog/shipping.md", []byte(validArticle))
	require.NoError(t, err)

	require.Equal(t, "shipping", doc.Slug)
	require.Equal(t, KindArticle, doc.Kind)
	require.Equal(t, "Shipping a Side Project", doc.Title)
	require.Equal(t, "nathan", doc.Author)
	require.Equal(t, time.Date(2023, 8, 28, 0, 0, 0, 0, time.UTC), doc.Date)
	require.Equal(t, []string{"go", "shipping"}, doc.Tags)
	require.NotEmpty(t, doc.Fingerprint)
	require.Equal(t, "/blog/shipping/", doc.OutputPath())
}

func TestParse_BodyOrderPreserved(t *testing.T) {
	doc, err := Parse("/content/blog/shipping.md", "blog/shipping.md", []byte(validArticle))
	require.NoError(t, err)

	require.Len(t, doc.Body, 3)
	require.Equal(t, NodeText, doc.Body[0].Type)
	require.Contains(t, doc.Body[0].Markdown, "Intro paragraph.")
	require.Equal(t, NodeComponent, doc.Body[1].Type)
	require.Equal(t, "rocket", doc.Body[1].Component)
	require.Equal(t, NodeText, doc.Body[2].Type)
	require.Contains(t, doc.Body[2].Markdown, "Closing paragraph.")
}

func TestParse_MissingDate(t *testing.T) {
	raw := []byte("---\ntitle: No Date\nauthor: nathan\n---\nBody\n")
	_, err := Parse("/content/blog/no-date.md", "blog/no-date.md", raw)
	require.Error(t, err)
	require.True(t, apperrors.IsCategory(err, apperrors.CategoryContent))
	require.False(t, apperrors.IsFatal(err), "malformed content is local to one document")

	be := err.(*apperrors.BuildError)
	require.Equal(t, "date", be.Context["field"])
}

func TestParse_InvalidDate(t *testing.T) {
	raw := []byte("---\ntitle: Bad Date\nauthor: nathan\ndate: next tuesday\n---\nBody\n")
	_, err := Parse("/content/blog/bad-date.md", "blog/bad-date.md", raw)
	require.Error(t, err)
	be := err.(*apperrors.BuildError)
	require.Equal(t, "date", be.Context["field"])
}

func TestParse_MissingTitleAndAuthor(t *testing.T) {
	_, err := Parse("x.md", "x.md", []byte("---\nauthor: nathan\ndate: 2023-01-01\n---\nBody\n"))
	require.Error(t, err)
	require.Equal(t, "title", err.(*apperrors.BuildError).Context["field"])

	_, err = Parse("x.md", "x.md", []byte("---\ntitle: T\ndate: 2023-01-01\n---\nBody\n"))
	require.Error(t, err)
	require.Equal(t, "author", err.(*apperrors.BuildError).Context["field"])
}

func TestParse_NoHeader(t *testing.T) {
	_, err := Parse("x.md", "x.md", []byte("# Just markdown\n"))
	require.Error(t, err)
	require.Equal(t, "frontmatter", err.(*apperrors.BuildError).Context["field"])
}

func TestParse_ExplicitSlugWins(t *testing.T) {
	raw := []byte("---\ntitle: T\nauthor: nathan\ndate: 2023-01-01\nslug: Custom Slug\n---\nBody\n")
	doc, err := Parse("x.md", "blog/2023-something.md", raw)
	require.NoError(t, err)
	require.Equal(t, "custom-slug", doc.Slug)
}

func TestParse_TOMLHeader(t *testing.T) {
	raw := []byte("+++\ntitle = \"Issue One\"\nauthor = \"nathan\"\ndate = \"2023-06-16\"\n+++\nHello subscribers.\n")
	doc, err := Parse("x.md", "newsletter/issue-one.md", raw)
	require.NoError(t, err)
	require.Equal(t, KindIssue, doc.Kind)
	require.Equal(t, "/newsletter/issue-one/", doc.OutputPath())
}

func TestParse_ExplicitKindOverridesPath(t *testing.T) {
	raw := []byte("---\ntitle: T\nauthor: nathan\ndate: 2023-01-01\nkind: issue\n---\nBody\n")
	doc, err := Parse("x.md", "blog/t.md", raw)
	require.NoError(t, err)
	require.Equal(t, KindIssue, doc.Kind)

	raw = []byte("---\ntitle: T\nauthor: nathan\ndate: 2023-01-01\nkind: podcast\n---\nBody\n")
	_, err = Parse("x.md", "blog/t.md", raw)
	require.Error(t, err)
	require.Equal(t, "kind", err.(*apperrors.BuildError).Context["field"])
}

func TestParse_TagNormalization(t *testing.T) {
	raw := []byte("---\ntitle: T\nauthor: nathan\ndate: 2023-01-01\ntags: [Go, go, '  ', Web]\n---\nBody\n")
	doc, err := Parse("x.md", "blog/t.md", raw)
	require.NoError(t, err)
	require.Equal(t, []string{"go", "web"}, doc.Tags)
}

func TestParse_PureFunction(t *testing.T) {
	a, err := Parse("x.md", "blog/t.md", []byte(validArticle))
	require.NoError(t, err)
	b, err := Parse("x.md", "blog/t.md", []byte(validArticle))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, a.Fingerprint, Fingerprint([]byte(validArticle)))
}
