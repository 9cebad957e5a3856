package imaging

import (
	"image"
	"testing"
)

func countForeground(mask *image.Gray) int {
	n := 0
	for _, v := range mask.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestThreshold_StrictlyGreater(t *testing.T) {
	diff := image.NewGray(image.Rect(0, 0, 3, 1))
	diff.Pix[0] = 79
	diff.Pix[1] = 80
	diff.Pix[2] = 81

	mask := Threshold(diff, 80)

	if mask.Pix[0] != 0 {
		t.Errorf("value 79: got %d, want 0", mask.Pix[0])
	}
	if mask.Pix[1] != 0 {
		t.Errorf("value 80 equals the cutoff and must stay background, got %d", mask.Pix[1])
	}
	if mask.Pix[2] != 255 {
		t.Errorf("value 81: got %d, want 255", mask.Pix[2])
	}
}

func TestThreshold_BinaryOutput(t *testing.T) {
	diff := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range diff.Pix {
		diff.Pix[i] = uint8(i)
	}

	mask := Threshold(diff, 100)
	for i, v := range mask.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d is %d, want 0 or 255", i, v)
		}
	}
}

func TestThreshold_Monotonic(t *testing.T) {
	// 256 pixels covering every possible diff value once.
	diff := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range diff.Pix {
		diff.Pix[i] = uint8(i)
	}

	prev := len(diff.Pix) + 1
	for _, cutoff := range []int{0, 50, 100, 150, 200, 255} {
		n := countForeground(Threshold(diff, cutoff))
		if n > prev {
			t.Errorf("cutoff %d selected %d pixels, more than a lower cutoff did (%d)", cutoff, n, prev)
		}
		prev = n
	}
}

func TestThreshold_Extremes(t *testing.T) {
	diff := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range diff.Pix {
		diff.Pix[i] = 255
	}

	// Cutoff 255 excludes even the maximum value.
	if n := countForeground(Threshold(diff, 255)); n != 0 {
		t.Errorf("cutoff 255: got %d foreground pixels, want 0", n)
	}

	// Cutoff 0 selects every nonzero pixel.
	if n := countForeground(Threshold(diff, 0)); n != 16 {
		t.Errorf("cutoff 0: got %d foreground pixels, want 16", n)
	}
}

func TestThreshold_PreservesDimensions(t *testing.T) {
	diff := image.NewGray(image.Rect(0, 0, 33, 17))

	mask := Threshold(diff, 80)
	if mask.Bounds().Dx() != 33 || mask.Bounds().Dy() != 17 {
		t.Errorf("unexpected dimensions: got %dx%d, want 33x17", mask.Bounds().Dx(), mask.Bounds().Dy())
	}
}
