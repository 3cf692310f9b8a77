package common

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an RGBA color with sRGB-encoded components in [0, 1]. Alpha is linear.
type Color [4]float32

// Hex builds an opaque Color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		float32((rgb>>16)&0xff) / 255,
		float32((rgb>>8)&0xff) / 255,
		float32(rgb&0xff) / 255,
		1,
	}
}

// RGB returns the color without its alpha channel.
func (c Color) RGB() [3]float32 {
	return [3]float32{c[0], c[1], c[2]}
}

// WithAlpha returns a copy of c with the given alpha.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Palette is the ordered set of colors used when an object asks for a random color.
var Palette = []string{
	"deeppink",
	"cyan",
	"yellow",
	"white",
	"tomato",
	"chartreuse",
	"crimson",
	"cornflowerblue",
	"coral",
}

// FromRGBA converts an 8-bit color to a Color. Components are taken as stored, so a
// premultiplied color keeps its premultiplied values.
func FromRGBA(c color.RGBA) Color {
	return Color{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// NamedColor resolves an SVG 1.1 / CSS color keyword (case-insensitive).
//
// Parameters:
//   - name: the color keyword, e.g. "silver"
//
// Returns:
//   - Color: the opaque color
//   - error: an error if the keyword is unknown
func NamedColor(name string) (Color, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", name)
	}
	return FromRGBA(c), nil
}

// MustNamedColor is NamedColor for compile-time constant names; it panics on unknown names.
func MustNamedColor(name string) Color {
	c, err := NamedColor(name)
	if err != nil {
		panic(err)
	}
	return c
}

// IntNSource is the subset of math/rand/v2's *Rand used to pick palette entries.
type IntNSource interface {
	IntN(n int) int
}

// RandomPaletteColor picks one entry of Palette using src.
func RandomPaletteColor(src IntNSource) Color {
	return MustNamedColor(Palette[src.IntN(len(Palette))])
}

// SRGBToLinear decodes one sRGB-encoded channel value to linear light.
func SRGBToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
