package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shot-diff/internal/pipeline"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <image1> <image2>",
		Short: "Compare two images and highlight the changed regions",
		Long: `Compare loads two equally-sized images, computes where they differ, and
writes two artifacts into the output directory:

  {name1}_{name2}_rectangles.png   transparent overlay with the highlights
  {name1}_{name2}_rectangles.json  the rectangles as a JSON list of {x,y,w,h}

Examples:
  # Compare two screenshots with the default tuning
  shot-diff compare before.png after.png

  # Require bigger changes and draw wider margins
  shot-diff compare --threshold 120 --min-area 400 --padding 10 a.png b.png

  # Highlight in green and write artifacts elsewhere
  shot-diff compare --color "#00CC00" -o /tmp/diffs a.png b.png

Configuration file (.shot-diff.yml) example:
  diff_threshold: 120
  min_area: 400
  padding: 10
  highlight_color: "#00CC00"
  output_dir: diffs`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	addTuningFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	p, err := pipeline.New(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	res, err := p.Compare(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Found %d changed region(s)\n", res.RectangleCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Overlay:  %s\n", res.OverlayPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Metadata: %s\n", res.MetadataPath)

	return nil
}
