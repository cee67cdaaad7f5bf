package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// Crop percentages outside this range are clamped.
const (
	MinCropPercent = 10
	MaxCropPercent = 90
)

// Grayscale converts the buffer to luma and replicates it across all three
// channels, so the result is still an RGB buffer.
//
// Luma uses the ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
func Grayscale(src *Buffer) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("grayscale: %w", ErrEmptyImage)
	}
	return wrap(imaging.Grayscale(src.img)), nil
}

// BlurKernelSize returns the Gaussian kernel side used for a blur intensity.
//
// Intensity 0 still yields a 3x3 kernel: there is no "no blur" setting.
func BlurKernelSize(intensity int) int {
	return 2*max(1, intensity) + 1
}

// Blur applies a Gaussian blur whose square kernel is BlurKernelSize(intensity).
//
// Sigma is derived from the kernel size as 0.3*((k-1)*0.5-1)+0.8. The blur
// runs as two 1-D passes (horizontal then vertical) with replicated borders.
func Blur(src *Buffer, intensity int) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("blur: %w", ErrEmptyImage)
	}

	size := BlurKernelSize(intensity)
	weights := gaussianWeights(size)

	horiz := convolution.NewKernel(size, 1)
	vert := convolution.NewKernel(1, size)
	copy(horiz.Matrix, weights)
	copy(vert.Matrix, weights)

	// bild truncates when storing channels; the half-level bias rounds instead.
	opts := &convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: true}
	pass := convolution.Convolve(src.img, horiz, opts)
	pass = convolution.Convolve(pass, vert, opts)

	return wrap(imaging.Clone(pass)), nil
}

// gaussianWeights returns a normalized 1-D Gaussian of the given odd length.
func gaussianWeights(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	center := size / 2
	w := make([]float64, size)
	var sum float64
	for i := range w {
		d := float64(i - center)
		w[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// Brightness adds beta to every colour channel, saturating to [0,255].
func Brightness(src *Buffer, beta int) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("brightness: %w", ErrEmptyImage)
	}
	out := imaging.AdjustFunc(src.img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: saturate(int(c.R) + beta),
			G: saturate(int(c.G) + beta),
			B: saturate(int(c.B) + beta),
			A: 0xff,
		}
	})
	return wrap(out), nil
}

// Contrast multiplies every colour channel by alpha, rounding to the nearest
// integer and saturating to [0,255]. No offset is applied.
func Contrast(src *Buffer, alpha float64) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("contrast: %w", ErrEmptyImage)
	}
	scale := func(v uint8) uint8 {
		return saturate(int(math.RoundToEven(float64(v) * alpha)))
	}
	out := imaging.AdjustFunc(src.img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 0xff}
	})
	return wrap(out), nil
}

// Rotate90 rotates the buffer 90 degrees clockwise. A WxH buffer becomes HxW.
func Rotate90(src *Buffer) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("rotate: %w", ErrEmptyImage)
	}
	// imaging rotates counter-clockwise.
	return wrap(imaging.Rotate270(src.img)), nil
}

// FlipHorizontal mirrors the buffer left to right.
func FlipHorizontal(src *Buffer) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("flip: %w", ErrEmptyImage)
	}
	return wrap(imaging.FlipH(src.img)), nil
}

// CropCenterPercent extracts a centered window covering percent of each
// dimension. percent is clamped to [MinCropPercent, MaxCropPercent].
//
// The window is newW = floor(w*p/100), newH = floor(h*p/100), never smaller
// than one pixel, with its top-left corner at ((w-newW)/2, (h-newH)/2).
func CropCenterPercent(src *Buffer, percent int) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("crop: %w", ErrEmptyImage)
	}
	rect := CenterRect(src.Width(), src.Height(), percent)
	return wrap(imaging.Crop(src.img, rect)), nil
}

// CenterRect computes the crop window used by CropCenterPercent.
func CenterRect(w, h, percent int) image.Rectangle {
	p := min(MaxCropPercent, max(MinCropPercent, percent))
	newW := max(1, w*p/100)
	newH := max(1, h*p/100)
	x1 := (w - newW) / 2
	y1 := (h - newH) / 2
	return image.Rect(x1, y1, x1+newW, y1+newH)
}

// saturate clamps v into the 8-bit range.
func saturate(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
