package detection

// Rectangle is an axis-aligned bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X, Y) is the top-left corner (inclusive)
//   - W and H are the extents in pixels, so the box covers
//     columns [X, X+W) and rows [Y, Y+H)
type Rectangle struct {
	X int `json:"x"` // Left edge (0 = leftmost column)
	Y int `json:"y"` // Top edge (0 = topmost row)
	W int `json:"w"` // Width in pixels
	H int `json:"h"` // Height in pixels
}

// Area returns the rectangle's area in square pixels (W × H).
func (r Rectangle) Area() int {
	return r.W * r.H
}

// FilterAndPad reduces a raw region set to the final highlight rectangles.
//
// Two passes run in order:
//
//  1. Filter: rectangles whose unpadded area is below minArea are dropped.
//  2. Pad: each survivor is grown by padding pixels on every side, clamped
//     to the image bounds so that 0 <= X, 0 <= Y, X+W <= width and
//     Y+H <= height.
//
// Filtering always uses the pre-padding area, so a small region never
// survives just because padding would enlarge it. The input order is
// preserved.
//
// Parameters:
//   - rects: Raw rectangles from region extraction.
//   - minArea: Minimum area in square pixels to keep a rectangle. Use 0 to
//     keep everything.
//   - padding: Margin in pixels added around each kept rectangle.
//   - width, height: Dimensions of the compared images, used for clamping.
func FilterAndPad(rects []Rectangle, minArea, padding, width, height int) []Rectangle {
	padded := make([]Rectangle, 0, len(rects))

	for _, r := range rects {
		if r.Area() < minArea {
			continue
		}

		x := r.X - padding
		if x < 0 {
			x = 0
		}
		y := r.Y - padding
		if y < 0 {
			y = 0
		}
		w := r.W + 2*padding
		if x+w > width {
			w = width - x
		}
		h := r.H + 2*padding
		if y+h > height {
			h = height - y
		}

		padded = append(padded, Rectangle{X: x, Y: y, W: w, H: h})
	}

	return padded
}
