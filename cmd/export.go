package main

import (
	"context"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/formatter"
	"github.com/desertthunder/pseudology/internal/tasks"
)

// Export writes a static snapshot of the archive to a directory, printing progress as it goes.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	seed, err := seedValue(cmd)
	if err != nil {
		return err
	}

	exporter := tasks.NewExporter(r.loadArchive(ctx, seed), r.httpClient, r.logger)

	progress := make(chan tasks.ProgressUpdate, 32)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := exporter.Export(ctx, progress, tasks.ExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
		Covers:     cmd.Bool("covers"),
	})
	close(progress)
	wg.Wait()

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlainln("Export complete: %s", result.OutputDirectory)
	r.writePlain("Reviews: %d exported, %d failed\n", result.SuccessfulExports, result.FailedExports)
	r.writePlain("Listings: %d\n", len(result.Listings))
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	return nil
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the whole archive to a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory (default: pseudology_export_<epoch>)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (text, markdown, csv)",
				Value:   "markdown",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent review writers (1-10)",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  "covers",
				Usage: "Download cover images",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Cover downloads per second",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the export summary as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			seedFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.Export(ctx, cmd)
		},
	}
}
