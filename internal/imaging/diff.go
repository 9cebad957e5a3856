package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// DiffMap computes the per-pixel color distance between two images of
// identical dimensions and rescales it into an 8-bit grayscale map.
//
// For every pixel position the Euclidean (L2) norm of the per-channel
// differences is taken over the R, G and B channels:
//
//	d = sqrt(Δr² + Δg² + Δb²)
//
// Alpha is excluded from the metric. The raw distances are then linearly
// rescaled so the maximum observed distance maps to 255. When the two
// images are pixel-identical the maximum distance is zero and the result
// is an all-zero map rather than a division error.
//
// Parameters:
//   - img1, img2: RGBA buffers of identical dimensions, typically from
//     LoadPair. Callers must have verified the dimensions already.
//
// Returns:
//   - *image.Gray: The difference map, same width and height as the inputs,
//     with its origin at (0, 0).
//
// Rows are processed in parallel across the available CPUs; the distance
// computation is independent per pixel.
func DiffMap(img1, img2 *image.RGBA) *image.Gray {
	width := img1.Bounds().Dx()
	height := img1.Bounds().Dy()

	dist := make([]float64, width*height)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			i1 := y * img1.Stride
			i2 := y * img2.Stride
			di := y * width
			for x := 0; x < width; x++ {
				dr := float64(img1.Pix[i1+0]) - float64(img2.Pix[i2+0])
				dg := float64(img1.Pix[i1+1]) - float64(img2.Pix[i2+1])
				db := float64(img1.Pix[i1+2]) - float64(img2.Pix[i2+2])
				dist[di+x] = math.Sqrt(dr*dr + dg*dg + db*db)
				i1 += 4
				i2 += 4
			}
		}
	})

	maxDist := 0.0
	for _, d := range dist {
		if d > maxDist {
			maxDist = d
		}
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	if maxDist == 0 {
		return gray
	}

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			di := y * width
			gi := y * gray.Stride
			for x := 0; x < width; x++ {
				gray.Pix[gi+x] = uint8(dist[di+x] / maxDist * 255)
			}
		}
	})

	return gray
}
