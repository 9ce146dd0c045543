// Package build drives the full pipeline: scan, parse, resolve, index, and
// manifest emission.
package build

import (
	"log/slog"

	"github.com/nathanjclark/www/internal/cache"
	"github.com/nathanjclark/www/internal/components"
	"github.com/nathanjclark/www/internal/config"
	"github.com/nathanjclark/www/internal/metrics"
)

// Context carries everything one build needs. It is constructed per build
// and threaded explicitly through each stage, so independent builds (and
// tests) share no state.
type Context struct {
	Config   *config.Config
	Registry *components.Registry
	Authors  config.AuthorSet
	Cache    *cache.Store
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// NewContext assembles a build context from loaded configuration. The
// component registry is populated once and frozen here; a duplicate
// registration aborts before any document is processed.
func NewContext(cfg *config.Config) (*Context, error) {
	registry, err := components.Builtin()
	if err != nil {
		return nil, err
	}

	store, err := cache.NewStore(cfg.Build.CacheDir)
	if err != nil {
		return nil, err
	}

	return &Context{
		Config:   cfg,
		Registry: registry,
		Authors:  cfg.AuthorSet(),
		Cache:    store,
		Recorder: metrics.NoopRecorder{},
		Logger:   slog.Default(),
	}, nil
}

// WithRecorder sets the metrics recorder.
func (c *Context) WithRecorder(r metrics.Recorder) *Context {
	c.Recorder = r
	return c
}

// WithLogger sets the logger.
func (c *Context) WithLogger(l *slog.Logger) *Context {
	c.Logger = l
	return c
}
