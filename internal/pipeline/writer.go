package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/shot-diff/internal/detection"
)

// ErrWriteArtifact is returned when a comparison artifact cannot be
// persisted. The underlying cause is attached to the message.
var ErrWriteArtifact = errors.New("cannot write comparison artifacts")

// writeArtifacts persists the overlay PNG and the rectangle metadata JSON
// under dir as "{prefix}_rectangles.png" and "{prefix}_rectangles.json".
//
// Both artifacts are encoded in memory before anything touches the
// filesystem, and a failure writing the second file removes the first, so
// after a non-nil error no artifact of this comparison exists on disk.
func writeArtifacts(dir, prefix string, overlay *image.NRGBA, rects []detection.Rectangle) (string, string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrWriteArtifact, err)
	}

	metadata, err := json.MarshalIndent(rects, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrWriteArtifact, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, overlay, imaging.PNG); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrWriteArtifact, err)
	}

	overlayPath := filepath.Join(dir, prefix+"_rectangles.png")
	metadataPath := filepath.Join(dir, prefix+"_rectangles.json")

	if err := os.WriteFile(overlayPath, buf.Bytes(), 0600); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrWriteArtifact, err)
	}
	if err := os.WriteFile(metadataPath, metadata, 0600); err != nil {
		os.Remove(overlayPath)
		return "", "", fmt.Errorf("%w: %v", ErrWriteArtifact, err)
	}

	return overlayPath, metadataPath, nil
}
