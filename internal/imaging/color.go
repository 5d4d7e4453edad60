package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	CSS  string    `json:"css"`  // CSS functional notation "rgb(r,g,b)"
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// CSSRGB formats an 8-bit triple the way a swatch's background is written.
func CSSRGB(r, g, b uint8) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// DescribeColor converts c to every representation in ColorResult.
// Alpha is reported separately; Hex, CSS and HSL ignore it.
func DescribeColor(c color.Color) ColorResult {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	cf := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	h, s, l := cf.Hsl()

	return ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		CSS:  CSSRGB(n.R, n.G, n.B),
		RGB:  RGBColor{R: n.R, G: n.G, B: n.B},
		RGBA: RGBAColor{R: n.R, G: n.G, B: n.B, A: n.A},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based relative to the image bounds; reads outside the
// image return an error instead of a zero color.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	res := DescribeColor(img.At(x, y))
	return &res, nil
}

// ParseHexColor parses "#RRGGBB" into an opaque color.RGBA.
func ParseHexColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParseHexColor is ParseHexColor for package-level constants.
func MustParseHexColor(hex string) color.RGBA {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
