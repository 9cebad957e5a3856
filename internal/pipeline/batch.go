package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pair names the two images of one comparison.
type Pair struct {
	// Before is the baseline image path.
	Before string

	// After is the changed image path.
	After string
}

// BatchResult is the outcome of one pair in a batch run. Exactly one of
// Result and Err is set.
type BatchResult struct {
	Pair   Pair
	Result *Result
	Err    error
}

// BatchProcessor runs many comparisons concurrently against one Pipeline.
// The Pipeline is stateless, so a single instance is shared by every
// worker; the concurrency limit bounds CPU use, not correctness.
type BatchProcessor struct {
	pipeline    *Pipeline
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch-level logging.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent comparisons.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around an existing Pipeline.
func NewBatchProcessor(p *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipeline:    p,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process compares every pair, at most concurrency at a time, and returns
// one BatchResult per pair in input order.
//
// A failing pair is recorded in its BatchResult and does not stop the
// remaining pairs. Cancelling the context stops scheduling new pairs;
// already-running comparisons finish and pairs that never ran report the
// context error.
func (bp *BatchProcessor) Process(ctx context.Context, pairs []Pair) []BatchResult {
	bp.logger.Info("starting batch comparison",
		"pairs", len(pairs),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	results := make([]BatchResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, pair := range pairs {
		i, pair := i, pair // pin per-iteration copies; module builds with pre-1.22 toolchains
		g.Go(func() error {
			res, err := bp.pipeline.Compare(ctx, pair.Before, pair.After)
			results[i] = BatchResult{Pair: pair, Result: res, Err: err}
			if err != nil {
				bp.logger.Warn("comparison failed",
					"before", pair.Before,
					"after", pair.After,
					"error", err,
				)
			}
			return nil
		})
	}

	// Workers never return errors; per-pair failures live in results.
	_ = g.Wait()

	bp.logger.Info("batch comparison finished",
		"pairs", len(pairs),
		"duration", time.Since(start),
	)

	return results
}
