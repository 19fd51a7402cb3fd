// Package media provides image processing utilities
package media

import (
	"bytes"
	"fmt"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ThumbnailProcessor resizes raw APS thumbnails and re-encodes them as webp
// for the file picker.
type ThumbnailProcessor struct {
	maxWidth int
	quality  int
}

// NewThumbnailProcessor creates a ThumbnailProcessor instance
func NewThumbnailProcessor(maxWidth, quality int) *ThumbnailProcessor {
	return &ThumbnailProcessor{
		maxWidth: maxWidth,
		quality:  quality,
	}
}

// Process decodes a raw thumbnail (APS serves PNG), resizes it to the
// requested width clamped to the configured maximum, and re-encodes as webp.
// Height follows the aspect ratio.
func (p *ThumbnailProcessor) Process(raw []byte, width int) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty thumbnail data")
	}

	if width <= 0 || width > p.maxWidth {
		width = p.maxWidth
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode thumbnail: %w", err)
	}

	resized := imaging.Resize(img, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: float32(p.quality)}); err != nil {
		return nil, fmt.Errorf("failed to encode webp thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
