package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nathanjclark/www/cmd/sitebuild/commands"
	apperrors "github.com/nathanjclark/www/internal/errors"
	"github.com/nathanjclark/www/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("sitebuild"),
		kong.Description("Content pipeline: parse, resolve, index, and emit the site build manifest."),
		kong.Vars{"version": version.Version},
		kong.UsageOnError(),
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, &cli); err != nil {
		fmt.Fprintf(os.Stderr, "sitebuild: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps error categories to exit codes.
func exitCodeFor(err error) int {
	switch apperrors.GetCategory(err) {
	case apperrors.CategoryConfig:
		return 7
	case apperrors.CategoryIndex, apperrors.CategoryComponent:
		return 3
	case apperrors.CategoryContent, apperrors.CategoryBuild:
		return 11
	default:
		return 1
	}
}
