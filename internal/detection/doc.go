// Package detection turns a binary difference mask into the final set of
// highlight rectangles.
//
// FindRegions groups the mask's foreground pixels into connected components
// and reduces each one to its tight bounding rectangle. FilterAndPad then
// drops rectangles below the minimum area and grows the survivors by the
// configured padding, clamped to the image bounds.
//
// # Connectivity
//
// Regions are 8-connected: foreground pixels touching horizontally,
// vertically, or diagonally belong to the same region. This matches the
// external-contour behavior of common vision libraries; a 4-connected
// variant would split regions that only touch at corners into separate
// rectangles.
//
// Only whole components are reported. A hole enclosed by a region does not
// produce its own rectangle, and has no effect on the enclosing bounding
// box either.
//
// # Determinism
//
// FindRegions discovers regions in raster-scan order (top-to-bottom, then
// left-to-right) and FilterAndPad preserves that order, so identical input
// always yields an identical rectangle list. The order carries no meaning
// downstream; it exists so outputs are reproducible.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - A Rectangle covers columns [X, X+W) and rows [Y, Y+H)
package detection
