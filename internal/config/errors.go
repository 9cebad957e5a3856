package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrThresholdOutOfRange is returned when the diff threshold is
	// outside [0, 255]. The difference map is 8-bit, so values outside
	// that range could never match any pixel.
	ErrThresholdOutOfRange = errors.New("invalid diff threshold: must be in [0, 255]")

	// ErrNegativeMinArea is returned when the minimum area is negative.
	// Use 0 to keep every detected rectangle.
	ErrNegativeMinArea = errors.New("invalid min area: must be non-negative")

	// ErrNegativePadding is returned when the padding is negative.
	// Use 0 to leave detected rectangles unpadded.
	ErrNegativePadding = errors.New("invalid padding: must be non-negative")

	// ErrInvalidHighlightColor is returned when the highlight color does
	// not parse as a hex triplet such as "#FF0000".
	ErrInvalidHighlightColor = errors.New("invalid highlight color: must be a hex triplet such as #FF0000")

	// ErrInvalidConcurrency is returned when the batch concurrency is not
	// positive. Zero concurrency would mean no comparison ever runs.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
