package config

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default configuration values. The tunables mirror the knobs of the
// comparison pipeline; everything else configures the surrounding CLI and
// HTTP service.
const (
	// DefaultDiffThreshold is the per-pixel difference cutoff. Difference
	// map values above it count as changed. 80 keeps JPEG noise and
	// anti-aliasing artifacts below the line while real content changes,
	// which typically rescale close to 255, stay above it.
	DefaultDiffThreshold = 80

	// DefaultMinArea is the minimum rectangle area in square pixels,
	// measured before padding. 100 (a 10×10 block) drops single-character
	// and cursor-sized flicker.
	DefaultMinArea = 100

	// DefaultPadding is the margin in pixels added around every surviving
	// rectangle so highlights don't sit flush against the changed content.
	DefaultPadding = 5

	// DefaultHighlightColor is the overlay color as a hex triplet.
	DefaultHighlightColor = "#FF0000"

	// DefaultOutputDir is where comparison artifacts are written when no
	// output directory is configured.
	DefaultOutputDir = "output"

	// DefaultConcurrency is the number of comparisons a batch runs at
	// once. Comparisons are CPU-bound, so modest parallelism is enough.
	DefaultConcurrency = 4

	// DefaultAddr is the listen address of the HTTP server.
	DefaultAddr = ":8080"

	// AppName is the application name used for XDG directory paths.
	AppName = "shot-diff"
)

// Config holds all configuration options for shot-diff. It is populated
// from an optional YAML file and CLI flags, validated once, and then passed
// through the application unchanged; nothing mutates it after startup.
type Config struct {
	// DiffThreshold is the binarization cutoff for the difference map,
	// in [0, 255]. Pixels whose rescaled difference is strictly greater
	// are considered changed. This is the primary sensitivity knob.
	DiffThreshold int `yaml:"diff_threshold"`

	// MinArea is the minimum area in square pixels a detected rectangle
	// must have, before padding, to be kept. Must be >= 0.
	MinArea int `yaml:"min_area"`

	// Padding is the margin in pixels added around each kept rectangle,
	// clamped to the image bounds. Must be >= 0.
	Padding int `yaml:"padding"`

	// HighlightColor is the rectangle color as a hex triplet such as
	// "#FF0000". The overlay renderer derives both the opaque border and
	// the translucent fill from it.
	HighlightColor string `yaml:"highlight_color"`

	// OutputDir is the directory where the overlay image and rectangle
	// metadata are written. It is created if missing.
	OutputDir string `yaml:"output_dir"`

	// Concurrency is the number of comparisons processed at once in
	// batch mode. Must be positive.
	Concurrency int `yaml:"concurrency"`

	// Addr is the HTTP server listen address in "host:port" form.
	Addr string `yaml:"addr"`

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool `yaml:"-"`
}

// NewConfig creates a new Config with default values. Callers override
// specific fields afterwards, then call Validate.
func NewConfig() *Config {
	return &Config{
		DiffThreshold:  DefaultDiffThreshold,
		MinArea:        DefaultMinArea,
		Padding:        DefaultPadding,
		HighlightColor: DefaultHighlightColor,
		OutputDir:      DefaultOutputDir,
		Concurrency:    DefaultConcurrency,
		Addr:           DefaultAddr,
	}
}

// Validate checks that every field is inside its documented range. It
// returns one of the package's sentinel errors for the first violation
// found, so callers can match with errors.Is.
func (c *Config) Validate() error {
	if c.DiffThreshold < 0 || c.DiffThreshold > 255 {
		return ErrThresholdOutOfRange
	}
	if c.MinArea < 0 {
		return ErrNegativeMinArea
	}
	if c.Padding < 0 {
		return ErrNegativePadding
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if _, err := colorful.Hex(c.HighlightColor); err != nil {
		return ErrInvalidHighlightColor
	}
	return nil
}

// Highlight parses HighlightColor into an opaque NRGBA color.
func (c *Config) Highlight() (color.NRGBA, error) {
	parsed, err := colorful.Hex(c.HighlightColor)
	if err != nil {
		return color.NRGBA{}, ErrInvalidHighlightColor
	}
	r, g, b := parsed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
