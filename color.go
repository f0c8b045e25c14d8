package lsysdraw

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered sequence of pen colors, referenced by index.
type Palette []RGB

// At returns the color at index i, wrapping in both directions.
func (p Palette) At(i int) RGB {
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Gradient returns the color a fraction t along the palette, linearly
// blending between neighbouring entries. t is clipped into [0, 1]; a
// single-entry palette yields a constant gradient.
func (p Palette) Gradient(t float64) RGB {
	if len(p) == 1 {
		return p[0]
	}
	t = math.Max(0, math.Min(1, t))

	// Locate the pair of entries t falls between, then blend with the
	// remainder rescaled to their span.
	x := t * float64(len(p)-1)
	i := int(math.Floor(x))
	if i >= len(p)-1 {
		return p[len(p)-1]
	}
	blended := toColorful(p[i]).BlendRgb(toColorful(p[i+1]), x-float64(i))
	return fromColorful(blended)
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 0xFF,
		G: float64(c.G) / 0xFF,
		B: float64(c.B) / 0xFF,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// ColorMode selects how draw commands are colored during interpretation.
type ColorMode uint8

const (
	// ColorIndexed colors every draw with the palette entry at the active
	// color index; the next-color instruction advances the index, wrapping
	// to 0 past the last entry.
	ColorIndexed ColorMode = iota

	// ColorGradient colors the k-th of n pen-down moves with
	// Palette.Gradient(k/n), sweeping the palette over the whole figure.
	ColorGradient
)
