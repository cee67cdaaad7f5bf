package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a pixel colour in several representations.
type ColorResult struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Hex  string   `json:"hex"`  // Hex format "#RRGGBB"
	RGB  RGBColor `json:"rgb"`  // RGB components
	HSL  HSLColor `json:"hsl"`  // HSL representation
	Luma uint8    `json:"luma"` // BT.601 luma, the value Grayscale would produce
}

// SampleColor returns the colour at a pixel of buf.
//
// Coordinates are 0-based with origin at top-left:
//   - Valid X range: 0 to width-1
//   - Valid Y range: 0 to height-1
func SampleColor(buf *Buffer, x, y int) (*ColorResult, error) {
	if buf.empty() {
		return nil, fmt.Errorf("sample color: %w", ErrEmptyImage)
	}
	if x < 0 || x >= buf.Width() || y < 0 || y >= buf.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, buf.Width(), buf.Height())
	}

	r, g, b := buf.RGBAt(x, y)
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()

	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
		Luma: uint8(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))),
	}, nil
}
