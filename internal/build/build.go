package build

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nathanjclark/www/internal/cache"
	"github.com/nathanjclark/www/internal/content"
	apperrors "github.com/nathanjclark/www/internal/errors"
	"github.com/nathanjclark/www/internal/index"
	"github.com/nathanjclark/www/internal/logfields"
	"github.com/nathanjclark/www/internal/manifest"
	"github.com/nathanjclark/www/internal/metrics"
	"github.com/nathanjclark/www/internal/render"
)

// docResult is the outcome of one per-document task.
type docResult struct {
	doc    *content.Document
	entry  manifest.Entry
	cached bool
	err    *DocumentError
}

// Run executes one full build.
//
// Per-document failures (malformed content, unknown component) are collected
// into the report and the document is excluded; the build continues. A
// duplicate slug across the set is a whole-set invariant violation and
// aborts the build with no manifest.
//
// Cancellation stops launching new document tasks; completed work is still
// reported through the returned error path.
func Run(ctx context.Context, bc *Context) (*Result, error) {
	start := time.Now()
	buildID := uuid.NewString()
	logger := bc.Logger.With(logfields.BuildID(buildID))

	scanner := content.NewScanner(bc.Config.Content.Dir, bc.Config.Content.Extensions)
	sources, err := scanner.Scan()
	if err != nil {
		return nil, err
	}
	logger.Info("Starting build", logfields.Count(len(sources)))

	snapshot, err := bc.Cache.Snapshot()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryBuild, apperrors.SeverityFatal, "load cache snapshot")
	}

	results, err := processDocuments(ctx, bc, sources, snapshot)
	if err != nil {
		return nil, err
	}

	report := Report{}
	var docs []*content.Document
	var fresh []manifest.Entry
	entries := make([]manifest.Entry, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			report.Errors = append(report.Errors, *r.err)
			bc.Recorder.IncDocumentResult(metrics.ResultExcluded)
			continue
		}
		if r.cached {
			report.CacheHits++
			bc.Recorder.IncCacheHit()
			bc.Recorder.IncDocumentResult(metrics.ResultCached)
		} else {
			report.CacheMisses++
			bc.Recorder.IncCacheMiss()
			bc.Recorder.IncDocumentResult(metrics.ResultSuccess)
			fresh = append(fresh, r.entry)
		}
		docs = append(docs, r.doc)
		entries = append(entries, r.entry)
	}

	// Indices are global: they are recomputed from the whole surviving set
	// even when every document came from cache.
	idx, err := index.Build(docs)
	if err != nil {
		return nil, err
	}

	m := manifest.New(buildID, time.Now())
	for _, e := range entries {
		m.Add(e)
	}
	m.Indexes = summarizeIndexes(idx, bc.Config.Feed.Limit)
	m.Stats = manifest.Stats{
		Documents:   len(docs),
		Excluded:    len(report.Errors),
		CacheHits:   report.CacheHits,
		CacheMisses: report.CacheMisses,
		DurationMS:  time.Since(start).Milliseconds(),
	}

	if err := persistCache(bc.Cache, fresh, docs); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryBuild, apperrors.SeverityFatal, "persist cache")
	}

	report.Duration = time.Since(start)
	bc.Recorder.ObserveBuildDuration(report.Duration)
	logger.Info("Build complete",
		logfields.Count(len(docs)),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	for _, de := range report.Errors {
		logger.Warn("Document excluded", logfields.Path(de.Path), logfields.Error(de.Err))
	}

	return &Result{Manifest: m, Index: idx, Report: report}, nil
}

// processDocuments runs the per-document stage on a bounded worker pool.
// Documents are independent: parsing and resolution share no mutable state,
// so the pool is a plain fan-out with a join before indexing.
func processDocuments(ctx context.Context, bc *Context, sources []content.Source, snapshot map[string]manifest.Entry) ([]docResult, error) {
	workers := bc.Config.Build.Workers
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		workers = 1
	}
	bc.Recorder.SetWorkerCount(workers)

	tasks := make(chan content.Source)
	results := make([]docResult, 0, len(sources))
	var wg sync.WaitGroup
	var mu sync.Mutex

	worker := func() {
		defer wg.Done()
		for src := range tasks {
			select {
			case <-ctx.Done():
				return
			default:
			}
			res := processOne(bc, src, snapshot)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}
	}

	wg.Add(workers)
	for range workers {
		go worker()
	}

	canceled := false
	for _, src := range sources {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case <-ctx.Done():
			canceled = true
		case tasks <- src:
		}
		if canceled {
			break
		}
	}
	close(tasks)
	wg.Wait()

	if canceled {
		return nil, apperrors.Wrap(ctx.Err(), apperrors.CategoryBuild, apperrors.SeverityFatal,
			fmt.Sprintf("build canceled after %d of %d documents", len(results), len(sources)))
	}

	// Workers complete out of order; restore source order for determinism.
	sort.Slice(results, func(i, j int) bool {
		return sourceKey(results[i]) < sourceKey(results[j])
	})
	return results, nil
}

func sourceKey(r docResult) string {
	if r.err != nil {
		return r.err.Path
	}
	return r.entry.SourcePath
}

// processOne handles a single raw content unit: cache lookup by fingerprint,
// then parse and resolve on a miss.
func processOne(bc *Context, src content.Source, snapshot map[string]manifest.Entry) docResult {
	fingerprint := content.Fingerprint(src.Raw)

	// The snapshot maps source path to the prior entry's slug; the store's
	// Lookup does the authoritative fingerprint check.
	if prior, ok := snapshot[src.RelPath]; ok {
		if entry, err := bc.Cache.Lookup(prior.Slug, fingerprint); err == nil {
			return docResult{doc: docFromEntry(entry), entry: entry, cached: true}
		}
	}

	doc, err := content.Parse(src.Path, src.RelPath, src.Raw)
	if err != nil {
		return docResult{err: &DocumentError{Path: src.RelPath, Err: err}}
	}

	if len(bc.Authors) > 0 {
		if _, known := bc.Authors[doc.Author]; !known {
			err := apperrors.MalformedContent(src.RelPath, "author",
				fmt.Errorf("author %q not in the author registry", doc.Author))
			return docResult{err: &DocumentError{Path: src.RelPath, Slug: doc.Slug, Err: err}}
		}
	}

	tree, err := render.Resolve(doc, bc.Registry)
	if err != nil {
		return docResult{err: &DocumentError{Path: src.RelPath, Slug: doc.Slug, Err: err}}
	}
	for _, f := range tree.Fragments {
		if f.Type == render.FragmentComponent {
			bc.Recorder.IncComponentResolved(f.Component)
		}
	}

	entry := manifest.Entry{
		Path:        doc.OutputPath(),
		Slug:        doc.Slug,
		Kind:        string(doc.Kind),
		Title:       doc.Title,
		Description: doc.Description,
		Author:      doc.Author,
		Date:        doc.Date,
		Tags:        doc.Tags,
		Thumbnail:   doc.Thumbnail,
		Cover:       doc.Cover,
		SourcePath:  doc.SourcePath,
		Fingerprint: fingerprint,
		RenderHash:  tree.Hash,
		Tree:        tree,
	}
	return docResult{doc: doc, entry: entry}
}

// docFromEntry reconstructs document metadata from a cached manifest entry,
// without re-parsing the source. Everything the index and the feed emitter
// read must survive this round trip.
func docFromEntry(e manifest.Entry) *content.Document {
	return &content.Document{
		Slug:        e.Slug,
		Kind:        content.Kind(e.Kind),
		Title:       e.Title,
		Description: e.Description,
		Author:      e.Author,
		Date:        e.Date,
		Tags:        e.Tags,
		Thumbnail:   e.Thumbnail,
		Cover:       e.Cover,
		SourcePath:  e.SourcePath,
		Fingerprint: e.Fingerprint,
	}
}

// persistCache saves freshly built entries and drops entries for documents
// that no longer exist. Failed documents do not reserve their slug: slug
// uniqueness is enforced over successfully parsed documents only, since a
// malformed header may not yield a trustworthy slug at all.
func persistCache(store *cache.Store, fresh []manifest.Entry, docs []*content.Document) error {
	for _, e := range fresh {
		if err := store.Save(e); err != nil {
			return err
		}
	}
	live := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		live[d.Slug] = struct{}{}
	}
	return store.Prune(live)
}

func summarizeIndexes(idx *index.Index, feedLimit int) manifest.IndexSummary {
	summary := manifest.IndexSummary{}
	for _, tag := range idx.TagNames() {
		summary.TagPaths = append(summary.TagPaths, "/tags/"+tag+"/")
	}
	authors := make([]string, 0, len(idx.Authors))
	for a := range idx.Authors {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	for _, a := range authors {
		summary.AuthorPaths = append(summary.AuthorPaths, "/authors/"+a+"/")
	}
	if feedLimit > 0 {
		summary.FeedPages = (len(idx.All) + feedLimit - 1) / feedLimit
	}
	return summary
}

// IsCanceled reports whether a build error came from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
