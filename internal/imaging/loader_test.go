package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage writes a solid PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestDecode(t *testing.T) {
	path := createTestImage(t, 60, 40, color.RGBA{255, 0, 0, 255})

	buf, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if buf.Width() != 60 || buf.Height() != 40 {
		t.Errorf("dimensions: got %dx%d, want 60x40", buf.Width(), buf.Height())
	}
	if r, g, b := buf.RGBAt(0, 0); r != 255 || g != 0 || b != 0 {
		t.Errorf("color: got (%d,%d,%d), want (255,0,0)", r, g, b)
	}
}

func TestDecode_NonExistent(t *testing.T) {
	_, err := Decode("/nonexistent/path/to/image.png")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("got %v, want *DecodeError", err)
	}
	if de.Path != "/nonexistent/path/to/image.png" {
		t.Errorf("Path: got %q", de.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("DecodeError should wrap the underlying os error")
	}
}

func TestDecode_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Decode(path)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Errorf("got %v, want *DecodeError", err)
	}
}

func TestEncodeDecode_Formats(t *testing.T) {
	src := solidBuffer(t, 24, 16, color.RGBA{0, 128, 255, 255})

	tests := []struct {
		name      string
		file      string
		format    string
		tolerance int
	}{
		{"png", "out.png", "png", 0},
		{"bmp", "out.bmp", "bmp", 0},
		{"jpeg", "out.jpg", "jpeg", 6},
		{"jpeg long ext", "out.JPEG", "jpeg", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := Encode(src, path); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			info, err := ProbeFile(path)
			if err != nil {
				t.Fatalf("ProbeFile failed: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("format: got %s, want %s", info.Format, tt.format)
			}

			back, err := Decode(path)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if back.Width() != 24 || back.Height() != 16 {
				t.Fatalf("dimensions: got %dx%d, want 24x16", back.Width(), back.Height())
			}
			r, g, b := back.RGBAt(12, 8)
			if absInt(int(r)-0) > tt.tolerance || absInt(int(g)-128) > tt.tolerance || absInt(int(b)-255) > tt.tolerance {
				t.Errorf("color: got (%d,%d,%d), want ~(0,128,255)", r, g, b)
			}
		})
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	src := solidBuffer(t, 4, 4, color.White)
	path := filepath.Join(t.TempDir(), "out.webp")

	err := Encode(src, path)
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want *EncodeError", err)
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Error("EncodeError should wrap ErrUnsupportedFormat")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created for an unsupported format")
	}
}

func TestEncode_UnwritablePath(t *testing.T) {
	src := solidBuffer(t, 4, 4, color.White)
	err := Encode(src, filepath.Join(t.TempDir(), "missing", "dir", "out.png"))
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Errorf("got %v, want *EncodeError", err)
	}
}

func TestEncode_EmptyBuffer(t *testing.T) {
	err := Encode(nil, filepath.Join(t.TempDir(), "out.png"))
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestProbeFile(t *testing.T) {
	path := createTestImage(t, 100, 80, color.White)

	info, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}
	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if !info.Writable {
		t.Error("png should be writable")
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}

func TestProbeFile_SniffsContent(t *testing.T) {
	// A PNG stored under a misleading extension is still detected as PNG.
	path := createTestImage(t, 10, 10, color.White)
	renamed := filepath.Join(filepath.Dir(path), "actually-png.gif")
	if err := os.Rename(path, renamed); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	info, err := ProbeFile(renamed)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.Writable {
		t.Error(".gif should not be writable")
	}
}

func TestFileCodec(t *testing.T) {
	var codec FileCodec
	src := patternBuffer(t, 8, 8)
	path := filepath.Join(t.TempDir(), "codec.png")

	if err := codec.Encode(src, path); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back, err := codec.Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !back.Equal(src) {
		t.Error("PNG round trip changed pixels")
	}
}
