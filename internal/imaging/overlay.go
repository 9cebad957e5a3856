package imaging

import (
	"image"
	"image/color"

	"github.com/ironsheep/shot-diff/internal/detection"
)

const (
	// outlineStroke is the rectangle border thickness in pixels.
	outlineStroke = 2

	// fillAlpha is the alpha of the translucent rectangle interior.
	fillAlpha = 64
)

// RenderOverlay draws highlight rectangles onto a fully transparent canvas.
//
// The canvas matches the compared images' dimensions and stays transparent
// (alpha 0) everywhere no rectangle covers. Each rectangle is rendered as a
// translucent interior fill (highlight color, alpha 64) underneath a
// 2-pixel opaque border (highlight color, alpha 255). The fill of a
// rectangle is painted before its border, so border pixels always keep
// full opacity. Rectangles are drawn in slice order and overwrite whatever
// earlier rectangles left at shared pixels; no alpha blending is performed.
//
// Parameters:
//   - width, height: Canvas dimensions in pixels.
//   - rects: Final rectangle set, usually from detection.FilterAndPad.
//   - highlight: Highlight color. Its alpha component is ignored; the
//     overlay supplies its own border and fill alphas.
func RenderOverlay(width, height int, rects []detection.Rectangle, highlight color.NRGBA) *image.NRGBA {
	overlay := image.NewNRGBA(image.Rect(0, 0, width, height))

	fill := color.NRGBA{R: highlight.R, G: highlight.G, B: highlight.B, A: fillAlpha}
	border := color.NRGBA{R: highlight.R, G: highlight.G, B: highlight.B, A: 255}

	for _, r := range rects {
		fillRect(overlay, r, fill)
		drawBorder(overlay, r, outlineStroke, border)
	}

	return overlay
}

// fillRect covers the whole rectangle, border rows included; the border is
// drawn over it afterwards.
func fillRect(img *image.NRGBA, r detection.Rectangle, c color.NRGBA) {
	for y := r.Y; y < r.Y+r.H; y++ {
		drawHLine(img, y, r.X, r.X+r.W, c)
	}
}

// drawBorder strokes the rectangle edges, growing inward from the boundary.
// The ring count is capped at the rectangle midline; rectangles thinner than
// the stroke are painted fully without spilling past their bounds.
func drawBorder(img *image.NRGBA, r detection.Rectangle, stroke int, c color.NRGBA) {
	if n := (r.W + 1) / 2; n < stroke {
		stroke = n
	}
	if n := (r.H + 1) / 2; n < stroke {
		stroke = n
	}
	x1 := r.X + r.W
	y1 := r.Y + r.H
	for s := 0; s < stroke; s++ {
		drawHLine(img, r.Y+s, r.X, x1, c)
		drawHLine(img, y1-1-s, r.X, x1, c)
		drawVLine(img, r.X+s, r.Y, y1, c)
		drawVLine(img, x1-1-s, r.Y, y1, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	for y := y0; y < y1; y++ {
		i := y*img.Stride + x*4
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}
