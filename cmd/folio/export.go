package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
)

func runExport(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("folio export", flag.ContinueOnError)
	var opts moduleOptions
	opts.register(fs)
	collections := fs.String("collections", "", "Comma separated collections (defaults to the configured list)")
	outputDir := fs.String("out", "", "Output directory (defaults to export.output_dir)")
	limit := fs.Int("limit", 0, "Keep only the newest N documents per collection")
	drafts := fs.Bool("drafts", false, "Include documents marked draft")
	watch := fs.Bool("watch", false, "Rebuild when the content directory changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := moduleBuilder(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	names := splitList(*collections)
	if len(names) == 0 {
		names = m.container().CollectionNames()
	}
	dir := *outputDir
	if dir == "" {
		dir = m.Config.Export.OutputDir
	}

	handler := sitecmd.NewExportCollectionHandler(m.container().Exporter(), m.Logger)
	build := func() error {
		for _, name := range names {
			cmd := sitecmd.ExportCollectionCommand{
				Collection:    name,
				OutputDir:     dir,
				Limit:         *limit,
				IncludeDrafts: *drafts,
				WriteCSS:      m.Config.Export.WriteCSS,
				ResultCallback: func(env sitecmd.ResultEnvelope) {
					if env.Result == nil {
						return
					}
					fmt.Fprintf(out, "%s: %d pages written to %s\n", env.Result.Collection, len(env.Result.Pages), env.Result.Directory)
				},
			}
			if err := handler.Execute(ctx, cmd); err != nil {
				return fmt.Errorf("export %s: %w", name, err)
			}
		}
		return nil
	}

	if err := build(); err != nil {
		return err
	}
	if !*watch && !m.Config.Features.Watch {
		return nil
	}

	root, err := filepath.Abs(m.Config.ContentDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "watching %s (ctrl+c to stop)\n", root)
	return watchContent(ctx, root, 300*time.Millisecond, m.Logger, func() error {
		fmt.Fprintln(out, "change detected, rebuilding")
		return build()
	})
}
