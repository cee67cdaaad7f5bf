package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 95

// ErrUnsupportedFormat is returned when a file extension maps to no writable format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DecodeError reports a file that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a buffer that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode image %q: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Decode reads the image at path into a Buffer.
//
// The format is detected from the file contents, not the extension. PNG,
// JPEG and BMP are supported; GIF and TIFF decode as well. EXIF orientation
// is applied to JPEG files so the buffer is upright.
//
// # Errors
//
// Every failure is returned as a *DecodeError.
func Decode(path string) (*Buffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	buf, err := NewBuffer(img)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return buf, nil
}

// Encode writes buf to path in the format implied by the file extension:
// ".png", ".jpg"/".jpeg" or ".bmp" (case-insensitive).
//
// # Errors
//
// Every failure is returned as an *EncodeError. An unknown extension wraps
// ErrUnsupportedFormat.
func Encode(buf *Buffer, path string) error {
	if buf.empty() {
		return &EncodeError{Path: path, Err: ErrEmptyImage}
	}
	format, err := writableFormat(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if err := imaging.Encode(f, buf.img, format, imaging.JPEGQuality(JPEGQuality)); err != nil {
		f.Close()
		return &EncodeError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

// writableFormat maps a file name to one of the formats the editor saves.
func writableFormat(path string) (imaging.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imaging.PNG, nil
	case ".jpg", ".jpeg":
		return imaging.JPEG, nil
	case ".bmp":
		return imaging.BMP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// FileCodec reads and writes buffers on the local filesystem.
type FileCodec struct{}

// Decode implements the editor codec using Decode.
func (FileCodec) Decode(path string) (*Buffer, error) {
	return Decode(path)
}

// Encode implements the editor codec using Encode.
func (FileCodec) Encode(buf *Buffer, path string) error {
	return Encode(buf, path)
}

// ImageInfo contains metadata about an image file.
//
// This struct provides essential information about an image without
// decoding its pixels.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format detected from the file contents, e.g. "png",
	// "jpeg" or "bmp".
	Format string `json:"format"`

	// Writable reports whether the editor can save back to this path.
	Writable bool `json:"writable"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// ProbeFile reads only the header of the image at path.
//
// Parameters:
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Dimensions and detected format.
//   - error: A *DecodeError if the file cannot be opened or is not a
//     recognised image.
func ProbeFile(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("failed to stat file: %w", err)}
	}

	_, werr := writableFormat(path)
	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		Writable:      werr == nil,
		FileSizeBytes: stat.Size(),
	}, nil
}
