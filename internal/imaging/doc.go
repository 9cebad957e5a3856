// Package imaging provides the pixel-level operations of the comparison
// pipeline: loading and normalizing image pairs, computing the difference
// map, thresholding it into a binary mask, and rendering the highlight
// overlay.
//
// All operations work with standard Go image types. Images are normalized
// to 8-bit *image.RGBA on load; difference maps and masks are *image.Gray;
// the overlay is *image.NRGBA so its alpha survives PNG encoding
// unpremultiplied.
//
// # Pipeline Stages
//
// The package implements the data-producing stages in their run order:
//
//  1. Load / LoadPair: decode and dimension-check the two inputs
//  2. DiffMap: per-pixel Euclidean RGB distance, rescaled to [0, 255]
//  3. Threshold: binarize the map against the configured cutoff
//  4. RenderOverlay: draw the final rectangles onto a transparent canvas
//
// Region extraction between stages 3 and 4 lives in the detection package.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner; X increases rightward and Y increases downward. Buffers created
// by this package always have their bounds anchored at (0, 0).
//
// # Thread Safety
//
// Every function is stateless: inputs are never mutated and each call
// allocates its own result buffer, so independent comparisons can run
// concurrently without locking.
//
// # Error Handling
//
// Only loading can fail. Decode failures wrap ErrDecode and dimension
// conflicts wrap ErrDimensionMismatch so callers can classify them with
// errors.Is; both carry detail about the offending input.
package imaging
