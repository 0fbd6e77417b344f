// Package theme provides color themes for the tide terminal emulator.
// A theme carries the 16 standard ANSI colors plus the UI colors the
// renderer and the emulation core need (foreground, background, cursor,
// selection highlight).
package theme

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with normalized float components (0.0 - 1.0).
// It implements image/color.Color so ecosystem styling APIs accept it.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// FromHex creates a color from a packed 0xRRGGBB value with full alpha.
func FromHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xFF) / 255.0,
		G: float64((hex>>8)&0xFF) / 255.0,
		B: float64(hex&0xFF) / 255.0,
		A: 1.0,
	}
}

// ParseHex parses a "#rrggbb" hex string into a Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1.0}, nil
}

// FromColor converts any image/color.Color into a theme Color.
func FromColor(c color.Color) Color {
	if c == nil {
		return Color{A: 1.0}
	}
	r, g, b, a := c.RGBA()
	return Color{
		R: float64(r) / 0xFFFF,
		G: float64(g) / 0xFFFF,
		B: float64(b) / 0xFFFF,
		A: float64(a) / 0xFFFF,
	}
}

// RGBA implements the image/color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(clamp01(c.R) * 0xFFFF)
	g = uint32(clamp01(c.G) * 0xFFFF)
	b = uint32(clamp01(c.B) * 0xFFFF)
	a = uint32(clamp01(c.A) * 0xFFFF)
	return r, g, b, a
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// Blend mixes two colors in RGB space. t is the weight of other.
func (c Color) Blend(other Color, t float64) Color {
	a := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
	b := colorful.Color{R: clamp01(other.R), G: clamp01(other.G), B: clamp01(other.B)}
	m := a.BlendRgb(b, t)
	return Color{R: m.R, G: m.G, B: m.B, A: 1.0}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
