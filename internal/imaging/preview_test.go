package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"
)

func TestPreview_ScalesDown(t *testing.T) {
	src := solidBuffer(t, 400, 200, color.RGBA{0, 0, 255, 255})

	result, err := Preview(src, 100, 100)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if result.Width != 100 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", result.Width, result.Height)
	}
	if result.OriginalWidth != 400 || result.OriginalHeight != 200 {
		t.Errorf("original dimensions: got %dx%d, want 400x200", result.OriginalWidth, result.OriginalHeight)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("encoded dimensions: got %v", img.Bounds())
	}
}

func TestPreview_NeverEnlarges(t *testing.T) {
	src := solidBuffer(t, 30, 20, color.White)

	result, err := Preview(src, 600, 600)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if result.Width != 30 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", result.Width, result.Height)
	}
}

func TestPreview_InvalidInput(t *testing.T) {
	if _, err := Preview(nil, 100, 100); err == nil {
		t.Error("Preview should fail for a nil buffer")
	}

	src := solidBuffer(t, 10, 10, color.White)
	for _, size := range [][2]int{{0, 100}, {100, 0}, {-1, -1}} {
		if _, err := Preview(src, size[0], size[1]); err == nil {
			t.Errorf("Preview should fail for box %dx%d", size[0], size[1])
		}
	}
}
