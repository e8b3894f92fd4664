// Package palette provides the colors a tangram is drawn and shared with. It
// implements HSV-based palette generation with brightness jitter.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrComponentRange = errors.New("color component out of range [0..255]")

// Color is an opaque 24-bit RGB color, the unit stored in snapshots.
type Color struct {
	R, G, B uint8
}

// Monochrome is the single-tone foreground used when no palette is given.
var Monochrome = Color{R: 0x29, G: 0xab, B: 0xe2}

// NewColor validates and returns a color from integer components.
func NewColor(r, g, b int) (Color, error) {
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 0xff {
			return Color{}, fmt.Errorf("%w: (%d, %d, %d)", ErrComponentRange, r, g, b)
		}
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// ParseHex parses "#rrggbb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string { return c.colorful().Hex() }

func (c Color) String() string { return c.Hex() }

// RGBA returns the opaque image/color equivalent.
func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255} }

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Shade scales the color's HSV brightness by factor, clamped to [0, 1].
func Shade(c Color, factor float64) Color {
	h, s, v := c.colorful().Hsv()
	return fromColorful(colorful.Hsv(h, s, clamp(v*factor, 0, 1)))
}

// Palette is one background color plus one foreground color per tan.
type Palette struct {
	Background Color
	Foreground []Color
}

// hsb converts from 0-100 ranges to a color: hue scaled to 0-360, saturation
// and brightness to 0-1.
func hsb(h, s, b float64) Color {
	return fromColorful(colorful.Hsv(h*3.6, clamp(s/100.0, 0, 1), clamp(b/100.0, 0, 1)))
}

// RandomPalette returns a light background and n mid-tone foreground colors.
func RandomPalette(r *rand.Rand, n int) Palette {
	p := Palette{
		Background: hsb(r.Float64()*100, r.Float64()*15, r.Float64()*10+90),
		Foreground: make([]Color, n),
	}
	for i := range p.Foreground {
		p.Foreground[i] = hsb(r.Float64()*100, r.Float64()*50+25, r.Float64()*50+25)
	}
	return p
}

// MonochromePalette returns a white background with every tan in Monochrome.
func MonochromePalette(n int) Palette {
	p := Palette{
		Background: Color{R: 0xff, G: 0xff, B: 0xff},
		Foreground: make([]Color, n),
	}
	for i := range p.Foreground {
		p.Foreground[i] = Monochrome
	}
	return p
}

// Shimmered applies a brightness jitter to every foreground color when
// shimmer >= 0. The input palette is left unchanged.
func Shimmered(p Palette, shimmer int, r *rand.Rand) Palette {
	if shimmer < 0 {
		return p
	}

	out := Palette{Background: p.Background, Foreground: make([]Color, len(p.Foreground))}
	for i, c := range p.Foreground {
		h, s, v := c.colorful().Hsv()
		v = clamp(v+(r.Float64()-0.5)*0.2, 0, 1)
		out.Foreground[i] = fromColorful(colorful.Hsv(h, s, v))
	}
	return out
}
