package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
)

// PreviewResult contains a display-sized rendering of a buffer.
type PreviewResult struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	OriginalWidth  int    `json:"original_width"`
	OriginalHeight int    `json:"original_height"`
	ImageBase64    string `json:"image_base64"`
	MimeType       string `json:"mime_type"`
}

// Preview scales buf to fit within maxWidth x maxHeight, preserving the
// aspect ratio, and returns it as a base64 PNG.
//
// Buffers that already fit are encoded at their native size; previews are
// never enlarged.
func Preview(buf *Buffer, maxWidth, maxHeight int) (*PreviewResult, error) {
	if buf.empty() {
		return nil, fmt.Errorf("preview: %w", ErrEmptyImage)
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", maxWidth, maxHeight)
	}

	fitted := imaging.Fit(buf.img, maxWidth, maxHeight, imaging.Lanczos)

	var out bytes.Buffer
	if err := png.Encode(&out, fitted); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:          fitted.Bounds().Dx(),
		Height:         fitted.Bounds().Dy(),
		OriginalWidth:  buf.Width(),
		OriginalHeight: buf.Height(),
		ImageBase64:    base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:       "image/png",
	}, nil
}
