// Package watch triggers incremental rebuilds when the content directory
// changes, with optional periodic full rebuilds.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/nathanjclark/www/internal/logfields"
)

// RebuildFunc runs one build. Errors are logged, not fatal: the watcher
// keeps running so the next save can fix the content.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a content directory and coalesces bursts of file events
// into single rebuilds.
type Watcher struct {
	dir      string
	rebuild  RebuildFunc
	debounce time.Duration
	every    time.Duration
	logger   *slog.Logger

	trigger chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the event debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithInterval adds a periodic full rebuild on top of event-driven ones.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) { w.every = d }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher over dir.
func New(dir string, rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		rebuild:  rebuild,
		debounce: 2 * time.Second, // coalesce editor save bursts
		logger:   slog.Default(),
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is canceled, rebuilding on content changes.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addRecursive(fw); err != nil {
		return err
	}
	w.logger.Info("Watching content directory", logfields.Path(w.dir))

	var scheduler gocron.Scheduler
	if w.every > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(w.every),
			gocron.NewTask(w.fire),
			gocron.WithName("periodic-rebuild"),
		)
		if err != nil {
			return fmt.Errorf("create periodic rebuild job: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	go w.eventLoop(ctx, fw)
	return w.rebuildLoop(ctx)
}

// Trigger requests a rebuild as if a file event had arrived. Used by the
// periodic job and by tests.
func (w *Watcher) Trigger() {
	w.fire()
}

func (w *Watcher) fire() {
	select {
	case w.trigger <- struct{}{}:
	default: // a rebuild is already pending
	}
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher) error {
	return filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != w.dir {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func (w *Watcher) eventLoop(ctx context.Context, fw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need registering so nested edits are seen.
			if event.Op&fsnotify.Create != 0 {
				_ = fw.Add(event.Name)
			}
			w.logger.Debug("Content change detected", logfields.Path(event.Name))
			w.fire()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildLoop debounces triggers and runs rebuilds serially.
func (w *Watcher) rebuildLoop(ctx context.Context) error {
	var timer *time.Timer
	var fireCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.trigger:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fireCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-fireCh:
			timer = nil
			fireCh = nil
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("Rebuild failed", logfields.Error(err))
			} else {
				w.logger.Info("Rebuild complete",
					logfields.DurationMS(float64(time.Since(start).Milliseconds())))
			}
		}
	}
}
