package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nathanjclark/www/internal/build"
	"github.com/nathanjclark/www/internal/config"
	"github.com/nathanjclark/www/internal/emit"
	apperrors "github.com/nathanjclark/www/internal/errors"
	"github.com/nathanjclark/www/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Output directory for the build manifest" default:""`
	Fresh   bool   `help:"Clear the fingerprint cache before building"`
	Workers int    `short:"w" help:"Override build.workers from config"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if b.Workers > 0 {
		cfg.Build.Workers = b.Workers
	}
	outputDir := cfg.Build.OutputDir
	if b.Output != "" {
		outputDir = b.Output
	}

	bc, err := build.NewContext(cfg)
	if err != nil {
		return err
	}
	bc.WithRecorder(metrics.NewPrometheusRecorder(prometheus.NewRegistry()))

	if b.Fresh {
		if err := bc.Cache.Clear(); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryBuild, apperrors.SeverityFatal, "clear cache")
		}
	}

	result, err := build.Run(context.Background(), bc)
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
		if err := emit.WriteFeed(outputDir, result.Index, cfg.Site, bc.Authors, cfg.Feed.Limit); err != nil {
			return err
		}
	}

	stats := result.Manifest.Stats
	fmt.Printf("Built %d documents (%d cached, %d excluded) in %dms\n",
		stats.Documents, stats.CacheHits, stats.Excluded, stats.DurationMS)
	for _, de := range result.Report.Errors {
		fmt.Fprintf(os.Stderr, "excluded %s: %v\n", de.Path, de.Err)
	}
	if result.Report.Failed() {
		slog.Warn("Build finished with excluded documents", "excluded", len(result.Report.Errors))
	}
	return nil
}
