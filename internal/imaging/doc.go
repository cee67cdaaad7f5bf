// Package imaging provides the raster buffer and pixel transforms used by the editor.
//
// The central type is Buffer, an immutable 8-bit RGB image. Every transform
// in this package takes a Buffer and returns a new one; inputs are never
// modified, so callers may keep old buffers around (for undo) without copying.
//
// # Transforms
//
//   - Grayscale: BT.601 luma replicated to three channels
//   - Blur: Gaussian blur with an odd kernel derived from an intensity
//   - EdgeDetect / Canny: binary edge map replicated to three channels
//   - Brightness / Contrast: saturating per-channel add / multiply
//   - Rotate90: 90 degrees clockwise
//   - FlipHorizontal: left-right mirror
//   - CropCenterPercent: centered sub-rectangle
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// Buffers are immutable and every function here is stateless, so they can
// be used from multiple goroutines.
//
// # Error Handling
//
// Transforms fail only for nil or empty buffers, reported by wrapping
// ErrEmptyImage. File errors are reported as *DecodeError and *EncodeError.
package imaging
