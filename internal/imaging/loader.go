package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/chai2010/webp"

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Load reads and decodes a single image from disk.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats
//     are PNG, JPEG, GIF, and WebP.
//
// Returns:
//   - *image.RGBA: The decoded image normalized to 8-bit RGBA. Grayscale,
//     paletted, and YCbCr sources are converted; an existing alpha channel
//     is carried along but ignored by the difference metric.
//   - error: Non-nil if the file cannot be read, or wraps ErrDecode if the
//     data is not a valid image in a supported format.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	return clone.AsRGBA(img), nil
}

// LoadPair loads two images and verifies they share identical pixel
// dimensions.
//
// Returns:
//   - The two decoded RGBA buffers, in argument order.
//   - error: Wraps ErrDimensionMismatch when the widths or heights differ,
//     or the Load error of whichever image failed first.
func LoadPair(path1, path2 string) (*image.RGBA, *image.RGBA, error) {
	img1, err := Load(path1)
	if err != nil {
		return nil, nil, err
	}

	img2, err := Load(path2)
	if err != nil {
		return nil, nil, err
	}

	size1 := img1.Bounds().Size()
	size2 := img2.Bounds().Size()
	if !size1.Eq(size2) {
		return nil, nil, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrDimensionMismatch, size1.X, size1.Y, size2.X, size2.Y)
	}

	return img1, img2, nil
}

// decode parses raster data in any registered format. WebP images that the
// pure-Go decoder rejects (lossy streams with alpha, extended features) are
// retried with the libwebp-based decoder before giving up.
func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	if img, webpErr := webp.Decode(bytes.NewReader(data)); webpErr == nil {
		return img, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrDecode, err)
}
