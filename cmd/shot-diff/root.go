package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for shot-diff.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shot-diff",
		Short: "Visual difference detector for screenshots",
		Long: `shot-diff compares two equally-sized images, finds the regions where they
differ, and renders a transparent overlay that highlights each changed
region with a padded rectangle.

The comparison writes two artifacts per run: the overlay PNG and a JSON
list of the detected rectangles. Sensitivity is controlled by three
tunables: the per-pixel difference threshold, the minimum rectangle area,
and the padding added around each rectangle.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
