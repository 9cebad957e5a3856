package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shot-diff/internal/sample"
)

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a sample image pair for trying out the tool",
		Long: `Seed writes two 800x600 PNG images that differ in four well-separated
regions: a recolored block, a moved block, a moved ellipse, and an added
block. They are handy for demos and for exercising the compare command:

  shot-diff seed --dir demo
  shot-diff compare demo/test_image1.png demo/test_image2.png`,
		RunE: runSeedCmd,
	}

	cmd.Flags().String("dir", ".", "Directory to write the sample images into")

	return cmd
}

// runSeedCmd executes the seed command.
func runSeedCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	before, after, err := sample.Generate(dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", before)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", after)

	return nil
}
