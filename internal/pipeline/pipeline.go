package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/shot-diff/internal/config"
	"github.com/ironsheep/shot-diff/internal/detection"
	"github.com/ironsheep/shot-diff/internal/imaging"
)

// Result describes a completed comparison.
type Result struct {
	// OverlayPath is the path of the persisted overlay PNG.
	OverlayPath string `json:"overlay_path"`

	// MetadataPath is the path of the persisted rectangle list (JSON).
	MetadataPath string `json:"metadata_path"`

	// RectangleCount is the number of changed regions found.
	RectangleCount int `json:"rectangle_count"`

	// Rectangles holds the final padded rectangles in detection order.
	Rectangles []detection.Rectangle `json:"rectangles"`

	// Overlay is the rendered highlight canvas, already written to
	// OverlayPath. Kept for callers that post-process in memory.
	Overlay *image.NRGBA `json:"-"`
}

// Pipeline runs the full image comparison: load, diff, threshold, extract
// regions, filter and pad, render, persist.
//
// A Pipeline holds only immutable configuration and is safe for concurrent
// use; every Compare call owns its buffers exclusively. Callers running
// comparisons in parallel must give each one a distinct pair of input names
// (or distinct output directories) so the derived artifact paths cannot
// collide.
type Pipeline struct {
	cfg       *config.Config
	highlight color.NRGBA
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline for the given configuration. The configuration is
// validated here once so Compare can assume it is sound.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	highlight, err := cfg.Highlight()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		highlight: highlight,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p, nil
}

// Compare runs the pipeline over two image files and persists the results.
//
// Stages run strictly in sequence: the images are loaded and checked for
// identical dimensions, the per-pixel difference map is computed and
// thresholded, connected changed regions are reduced to bounding
// rectangles, small rectangles are dropped and survivors padded, and the
// overlay is rendered. The overlay PNG and the rectangle metadata JSON are
// then written to the configured output directory under a prefix derived
// from both file names ("{stem1}_{stem2}_rectangles.*").
//
// The first failing stage aborts the run; in that case no artifact is
// written at all. The context is only consulted between stages: once a
// stage runs it completes, since stage cost is bounded by the pixel count
// rather than external I/O.
func (p *Pipeline) Compare(ctx context.Context, image1, image2 string) (*Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img1, img2, err := imaging.LoadPair(image1, image2)
	if err != nil {
		return nil, err
	}
	width := img1.Bounds().Dx()
	height := img1.Bounds().Dy()
	p.logger.Debug("images loaded",
		"image1", image1,
		"image2", image2,
		"width", width,
		"height", height,
	)

	diff := imaging.DiffMap(img1, img2)
	mask := imaging.Threshold(diff, p.cfg.DiffThreshold)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regions := detection.FindRegions(mask)
	rects := detection.FilterAndPad(regions, p.cfg.MinArea, p.cfg.Padding, width, height)
	p.logger.Debug("regions extracted",
		"raw_regions", len(regions),
		"rectangles", len(rects),
		"threshold", p.cfg.DiffThreshold,
		"min_area", p.cfg.MinArea,
	)

	overlay := imaging.RenderOverlay(width, height, rects, p.highlight)

	prefix := outputPrefix(image1, image2)
	overlayPath, metadataPath, err := writeArtifacts(p.cfg.OutputDir, prefix, overlay, rects)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("comparison finished",
		"rectangles", len(rects),
		"overlay", overlayPath,
		"duration", time.Since(start),
	)

	return &Result{
		OverlayPath:    overlayPath,
		MetadataPath:   metadataPath,
		RectangleCount: len(rects),
		Rectangles:     rects,
		Overlay:        overlay,
	}, nil
}

// outputPrefix derives the artifact name prefix from both input file names,
// in argument order, with extensions stripped.
func outputPrefix(image1, image2 string) string {
	return fmt.Sprintf("%s_%s", stem(image1), stem(image2))
}

// stem returns the file name without directory and extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
