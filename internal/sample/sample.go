// Package sample generates the canonical image pair used for demos and
// manual testing: an 800×600 "before" screenshot and an "after" variant
// with one recolored block, two moved shapes, and one added block.
package sample

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// File names written by Generate.
const (
	BeforeName = "test_image1.png"
	AfterName  = "test_image2.png"
)

// Canvas dimensions of the generated pair.
const (
	Width  = 800
	Height = 600
)

// Generate writes the sample pair into dir, creating it if needed, and
// returns the two file paths (before, after).
//
// The changes between the two images are deliberately spread out so a
// comparison finds several well-separated regions: the top-left block
// changes color in place, the top-right block shifts 50px right, the
// ellipse shifts down-right, and a new block appears in the bottom-right
// corner.
func Generate(dir string) (string, string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", "", fmt.Errorf("failed to create sample directory: %w", err)
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	before := imaging.New(Width, Height, white)
	after := imaging.New(Width, Height, white)

	blue := color.NRGBA{B: 255, A: 255}
	yellow := color.NRGBA{R: 255, G: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	red := color.NRGBA{R: 255, A: 255}
	purple := color.NRGBA{R: 128, B: 128, A: 255}

	fillRect(before, 100, 100, 300, 200, blue)
	fillRect(after, 100, 100, 300, 200, yellow)

	fillRect(before, 400, 150, 600, 250, green)
	fillRect(after, 450, 150, 650, 250, green)

	fillEllipse(before, 200, 300, 400, 500, red)
	fillEllipse(after, 250, 320, 450, 520, red)

	fillRect(after, 600, 400, 750, 550, purple)

	beforePath := filepath.Join(dir, BeforeName)
	afterPath := filepath.Join(dir, AfterName)

	if err := imaging.Save(before, beforePath); err != nil {
		return "", "", fmt.Errorf("failed to save sample image: %w", err)
	}
	if err := imaging.Save(after, afterPath); err != nil {
		return "", "", fmt.Errorf("failed to save sample image: %w", err)
	}

	return beforePath, afterPath, nil
}

// fillRect paints the rectangle spanning (x0, y0) to (x1, y1), both corners
// inclusive.
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// fillEllipse paints the ellipse inscribed in the bounding box (x0, y0) to
// (x1, y1), both corners inclusive.
func fillEllipse(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := float64(x1-x0) / 2
	ry := float64(y1-y0) / 2

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}
