package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/nathanjclark/www/internal/build"
	"github.com/nathanjclark/www/internal/config"
	"github.com/nathanjclark/www/internal/emit"
	"github.com/nathanjclark/www/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory for the build manifest" default:""`
	Debounce time.Duration `help:"Event debounce window" default:"2s"`
	Every    time.Duration `help:"Additionally run a full rebuild at this interval (0 disables)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	outputDir := cfg.Build.OutputDir
	if w.Output != "" {
		outputDir = w.Output
	}

	bc, err := build.NewContext(cfg)
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) error {
		result, err := build.Run(ctx, bc)
		if err != nil {
			return err
		}
		if err := emit.WriteManifest(outputDir, result.Manifest); err != nil {
			return err
		}
		if err := emit.WriteSitemap(outputDir, result.Manifest, cfg.Site.BaseURL); err != nil {
			return err
		}
		if cfg.Feed.Enabled {
			return emit.WriteFeed(outputDir, result.Index, cfg.Site, bc.Authors, cfg.Feed.Limit)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []watch.Option{watch.WithDebounce(w.Debounce)}
	if w.Every > 0 {
		opts = append(opts, watch.WithInterval(w.Every))
	}

	watcher := watch.New(cfg.Content.Dir, rebuild, opts...)
	// Build once up front so the watcher starts from fresh output.
	if err := rebuild(ctx); err != nil {
		return err
	}

	err = watcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
