package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nathanjclark/www/internal/config"
	"github.com/nathanjclark/www/internal/content"
	"github.com/nathanjclark/www/internal/index"
)

// ListCmd implements the 'list' command: parse and index only, no rendering.
type ListCmd struct {
	Tag    string `help:"Only show documents carrying this tag"`
	Author string `help:"Only show documents by this author"`
}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	scanner := content.NewScanner(cfg.Content.Dir, cfg.Content.Extensions)
	sources, err := scanner.Scan()
	if err != nil {
		return err
	}

	var docs []*content.Document
	var failures int
	for _, src := range sources {
		doc, err := content.Parse(src.Path, src.RelPath, src.Raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", src.RelPath, err)
			failures++
			continue
		}
		docs = append(docs, doc)
	}

	idx, err := index.Build(docs)
	if err != nil {
		return err
	}

	selected := idx.All
	if l.Tag != "" {
		selected = idx.Tags[strings.ToLower(l.Tag)]
	} else if l.Author != "" {
		selected = idx.Authors[l.Author]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tKIND\tSLUG\tAUTHOR\tTAGS")
	for _, d := range selected {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			d.Date.Format("2006-01-02"), d.Kind, d.Slug, d.Author, strings.Join(d.Tags, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d document(s) failed to parse\n", failures)
	}
	return nil
}
