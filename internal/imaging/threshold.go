package imaging

import "image"

// Threshold binarizes a grayscale difference map against a cutoff.
//
// A pixel is foreground (value 255) when its gray value is strictly greater
// than cutoff; pixels equal to the cutoff stay background (value 0). Higher
// cutoffs therefore produce fewer and smaller foreground regions.
//
// Parameters:
//   - diff: Grayscale map, typically from DiffMap.
//   - cutoff: Inclusive-lower sensitivity bound in [0, 255]. With 255 the
//     mask is always empty because no 8-bit value exceeds it.
//
// Returns:
//   - *image.Gray: Mask of the same dimensions holding only 0 or 255.
func Threshold(diff *image.Gray, cutoff int) *image.Gray {
	mask := image.NewGray(diff.Bounds())

	for i, v := range diff.Pix {
		if int(v) > cutoff {
			mask.Pix[i] = 255
		}
	}

	return mask
}
