package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Override the configured log level (debug, info, warn, error)",
		},
	}
}

// outputFlags are shared by every command that prints archive data.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output as JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, markdown, csv)",
			Value:   "text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the export to a file instead of stdout",
		},
	}
}

func withOutput(flags ...cli.Flag) []cli.Flag {
	return append(flags, outputFlags()...)
}

func seedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "seed",
		Usage: "Shuffle seed for the pick-up list (default: config or a fresh session)",
	}
}

func pageFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "page",
		Usage: "Page of six results to show, starting at 1",
		Value: 1,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Set up pseudology",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the config (default: the --config path)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.SetupConfig(ctx, cmd)
				},
			},
		},
	}
}

func reviewsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "reviews",
		Aliases: []string{"r"},
		Usage:   "List, search and show reviews",
		Commands: []*cli.Command{
			{
				Name:  "recent",
				Usage: "Show the newest reviews",
				Flags: withOutput(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.ReviewsRecent(ctx, cmd)
				},
			},
			{
				Name:  "pickups",
				Usage: "Show one page of shuffled older reviews",
				Flags: withOutput(seedFlag(), pageFlag()),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.ReviewsPickups(ctx, cmd)
				},
			},
			{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Search reviews by artist, title or text",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: withOutput(
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Fields to match (all, artist, title)",
						Value:   "all",
					},
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.ReviewsSearch(ctx, cmd)
				},
			},
			{
				Name:  "show",
				Usage: "Show a single review",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: withOutput(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.ReviewsShow(ctx, cmd)
				},
			},
			{
				Name:  "related",
				Usage: "Show reviews related to a review",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: withOutput(pageFlag()),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.ReviewsRelated(ctx, cmd)
				},
			},
		},
	}
}

func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"l"},
		Usage:   "Show the artist index grouped by initial",
		Flags: withOutput(
			&cli.StringFlag{
				Name:  "letter",
				Usage: "Only show artists under this initial (A-Z or #)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.Library(ctx, cmd)
		},
	}
}

func bestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "best",
		Usage: "Show an annual best-of ranking",
		Flags: withOutput(
			&cli.StringFlag{
				Name:    "year",
				Aliases: []string{"y"},
				Usage:   "Ranking year (default: most recent)",
			},
			&cli.BoolFlag{
				Name:  "years",
				Usage: "List the available years",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.Best(ctx, cmd)
		},
	}
}

func aboutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "about",
		Usage: "Show the about page",
		Flags: withOutput(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.About(ctx, cmd)
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the archive as a JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: config)",
			},
			&cli.DurationFlag{
				Name:  "refresh",
				Usage: "Reload the archive at this interval (0 disables)",
			},
			seedFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.Serve(ctx, cmd)
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse the archive interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "view",
				Usage: "Initial view (home, search, library, best, about)",
				Value: "home",
			},
			seedFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.TUI(ctx, cmd)
		},
	}
}
