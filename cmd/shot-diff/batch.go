package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shot-diff/internal/config"
	"github.com/ironsheep/shot-diff/internal/pipeline"
)

// imageExtensions are the file suffixes batch mode picks up when pairing
// directories.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compare all same-named images across two directories",
		Long: `Batch pairs every image file in the before directory with the file of the
same name in the after directory and compares each pair concurrently.
Files without a counterpart are skipped with a warning. A failing pair is
reported but does not stop the rest of the batch.

Examples:
  # Compare two screenshot runs
  shot-diff batch --before run1/ --after run2/ -o diffs/

  # Limit the number of concurrent comparisons
  shot-diff batch --before run1/ --after run2/ --concurrency 2`,
		RunE: runBatchCmd,
	}

	cmd.Flags().String("before", "", "Directory holding the baseline images (required)")
	cmd.Flags().String("after", "", "Directory holding the changed images (required)")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of comparisons to run at once")
	addTuningFlags(cmd)

	_ = cmd.MarkFlagRequired("before")
	_ = cmd.MarkFlagRequired("after")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return err
		}
	}

	beforeDir, err := cmd.Flags().GetString("before")
	if err != nil {
		return err
	}
	afterDir, err := cmd.Flags().GetString("after")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	pairs, err := pairDirectories(beforeDir, afterDir, logger)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("no image pairs found between %s and %s", beforeDir, afterDir)
	}

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

	bp := pipeline.NewBatchProcessor(p,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)
	results := bp.Process(ctx, pairs)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", filepath.Base(r.Pair.Before), r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK   %s: %d changed region(s) -> %s\n",
			filepath.Base(r.Pair.Before), r.Result.RectangleCount, r.Result.OverlayPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d comparisons failed", failed, len(results))
	}
	return nil
}

// pairDirectories matches image files of the same name across two
// directories, in sorted name order. Files present on only one side are
// logged and skipped.
func pairDirectories(beforeDir, afterDir string, logger *slog.Logger) ([]pipeline.Pair, error) {
	entries, err := os.ReadDir(beforeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read before directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	pairs := make([]pipeline.Pair, 0, len(names))
	for _, name := range names {
		after := filepath.Join(afterDir, name)
		if _, err := os.Stat(after); err != nil {
			logger.Warn("no counterpart in after directory, skipping", "file", name)
			continue
		}
		pairs = append(pairs, pipeline.Pair{
			Before: filepath.Join(beforeDir, name),
			After:  after,
		})
	}

	return pairs, nil
}
