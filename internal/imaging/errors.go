package imaging

import "errors"

var (
	// ErrDecode is returned when image data cannot be parsed in any
	// supported raster format (PNG, JPEG, GIF, WebP).
	ErrDecode = errors.New("cannot decode image data")

	// ErrDimensionMismatch is returned when the two images of a comparison
	// do not share identical pixel dimensions.
	ErrDimensionMismatch = errors.New("input images have different dimensions")
)
