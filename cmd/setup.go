package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/shared"
)

// SetupConfig writes the example configuration, refusing to overwrite unless --force is set.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		path = "config.toml"
	}

	if cmd.Bool("force") {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Config written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set source.reviews_url to the published CSV of your review sheet\n")
	r.writePlain("2. Run 'pseudology reviews recent' to check the connection\n")
	return nil
}
