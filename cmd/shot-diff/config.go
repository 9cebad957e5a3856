package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shot-diff/internal/config"
)

// addTuningFlags registers the flags shared by every command that runs
// comparisons.
func addTuningFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("threshold", "t", config.DefaultDiffThreshold,
		"Per-pixel difference cutoff in [0, 255]; higher finds fewer regions")
	cmd.Flags().IntP("min-area", "a", config.DefaultMinArea,
		"Minimum rectangle area in square pixels, measured before padding")
	cmd.Flags().IntP("padding", "p", config.DefaultPadding,
		"Margin in pixels added around every surviving rectangle")
	cmd.Flags().String("color", config.DefaultHighlightColor,
		"Highlight color as a hex triplet")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Directory for the overlay and metadata artifacts")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .shot-diff.yml in current directory or XDG config dir)")
}

// buildConfig creates a Config from an optional config file and the command
// flags. File values apply first; flags the user actually set override them.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	explicitConfigPath := path != ""

	if found := config.FindConfigFile(path); found != "" {
		cfg, err = config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}

	if cmd.Flags().Changed("threshold") {
		if cfg.DiffThreshold, err = cmd.Flags().GetInt("threshold"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("min-area") {
		if cfg.MinArea, err = cmd.Flags().GetInt("min-area"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("padding") {
		if cfg.Padding, err = cmd.Flags().GetInt("padding"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("color") {
		if cfg.HighlightColor, err = cmd.Flags().GetString("color"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}
