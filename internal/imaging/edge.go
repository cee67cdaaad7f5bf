package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Hysteresis thresholds used by EdgeDetect, on the 0-255 luma scale.
const (
	EdgeThresholdLow  = 60
	EdgeThresholdHigh = 160
)

// EdgeDetect runs Canny edge detection with the fixed EdgeThresholdLow and
// EdgeThresholdHigh thresholds.
//
// The output is a binary edge map (255 = edge, 0 = background) replicated
// across all three channels.
func EdgeDetect(src *Buffer) (*Buffer, error) {
	return Canny(src, EdgeThresholdLow, EdgeThresholdHigh)
}

// Canny performs Canny edge detection on the luma of src.
//
// # Algorithm
//
//  1. Grayscale conversion using ITU-R BT.601 weights
//
//  2. Gradient computation: 3x3 Sobel operators for X and Y,
//     magnitude = |Gx| + |Gy|
//
//  3. Non-maximum suppression: keep only pixels that are local maxima
//     along the quantized gradient direction
//
//  4. Hysteresis thresholding:
//     - magnitude > high: strong edge, always kept
//     - low < magnitude <= high: weak edge, kept only if 8-connected
//     (directly or through other weak edges) to a strong edge
//     - magnitude <= low: discarded
//
// No smoothing is applied beforehand; callers that want it can Blur first.
func Canny(src *Buffer, low, high int) (*Buffer, error) {
	if src.empty() {
		return nil, fmt.Errorf("edge detect: %w", ErrEmptyImage)
	}
	if low > high {
		low, high = high, low
	}

	gray := imaging.Grayscale(src.img)
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()

	luma := func(x, y int) int {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return int(gray.Pix[y*gray.Stride+x*4])
	}

	gradX := make([]int, width*height)
	gradY := make([]int, width*height)
	magnitude := make([]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := -luma(x-1, y-1) + luma(x+1, y-1) +
				-2*luma(x-1, y) + 2*luma(x+1, y) +
				-luma(x-1, y+1) + luma(x+1, y+1)
			gy := -luma(x-1, y-1) - 2*luma(x, y-1) - luma(x+1, y-1) +
				luma(x-1, y+1) + 2*luma(x, y+1) + luma(x+1, y+1)
			i := y*width + x
			gradX[i] = gx
			gradY[i] = gy
			magnitude[i] = abs(gx) + abs(gy)
		}
	}

	mag := func(x, y int) int {
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0
		}
		return magnitude[y*width+x]
	}

	const (
		none = iota
		weak
		strong
	)
	class := make([]uint8, width*height)
	stack := make([]int, 0, 64)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			m := magnitude[i]
			if m <= low {
				continue
			}

			// Quantize the gradient direction using tan(22.5°) ≈ 0.4142 and
			// tan(67.5°) ≈ 2.4142 in fixed point, avoiding atan2.
			ax, ay := abs(gradX[i]), abs(gradY[i])
			var n1, n2 int
			switch {
			case ay*10000 <= ax*4142:
				n1, n2 = mag(x-1, y), mag(x+1, y)
			case ay*10000 >= ax*24142:
				n1, n2 = mag(x, y-1), mag(x, y+1)
			case (gradX[i] < 0) != (gradY[i] < 0):
				n1, n2 = mag(x-1, y+1), mag(x+1, y-1)
			default:
				n1, n2 = mag(x-1, y-1), mag(x+1, y+1)
			}
			if m < n1 || m <= n2 {
				continue
			}

			if m > high {
				class[i] = strong
				stack = append(stack, i)
			} else {
				class[i] = weak
			}
		}
	}

	// Grow strong edges through connected weak pixels.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if class[j] == weak {
					class[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}

	result := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v uint8
			if class[y*width+x] == strong {
				v = 0xff
			}
			o := result.PixOffset(x, y)
			result.Pix[o] = v
			result.Pix[o+1] = v
			result.Pix[o+2] = v
		}
	}

	return wrap(result), nil
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
