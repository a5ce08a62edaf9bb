package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.LoadConfigOrDefault("config.toml")
	if err != nil {
		logger.Warn("failed to load config.toml, using defaults", "error", err)
		config = shared.DefaultConfig()
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "pseudology",
		Usage:    "Browse a personal music review archive from the terminal",
		Version:  "0.3.0",
		Flags:    rootFlags(),
		Before:   runner.configure,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
