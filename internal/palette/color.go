package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// AccentOffset is added to every channel of a base color to build its accent.
	AccentOffset = 5
	// AccentAlpha is the opacity of the accent border.
	AccentAlpha = 0.4
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// FromColorful quantizes a go-colorful color, rounding each channel to nearest.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// MustParseHex parses "#rrggbb" and panics on malformed input.
func MustParseHex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return FromColorful(c)
}

func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}

// RGBA is a color with a fractional alpha, as used for the accent border.
type RGBA struct {
	RGB
	A float64
}

// Over composites c onto an opaque background. Terminals have no alpha channel,
// so the accent is flattened before it is rendered.
func (c RGBA) Over(bg RGB) RGB {
	return FromColorful(bg.Colorful().BlendRgb(c.RGB.Colorful(), c.A))
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.1f)", c.R, c.G, c.B, c.A)
}

// Accent derives the accent color of base. Channels saturate at 255.
func Accent(base RGB) RGBA {
	return RGBA{
		RGB: RGB{
			R: addSaturating(base.R, AccentOffset),
			G: addSaturating(base.G, AccentOffset),
			B: addSaturating(base.B, AccentOffset),
		},
		A: AccentAlpha,
	}
}

func addSaturating(v, d uint8) uint8 {
	if v > 255-d {
		return 255
	}
	return v + d
}

// Swatch is the pair of colors the interface applies for one tempo.
type Swatch struct {
	Base   RGB
	Accent RGBA
}
