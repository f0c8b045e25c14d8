// Package canvas provides a software image surface for the draw commands
// the turtle interpreter streams out.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/aabizri/lsysdraw"
)

// Image is a canvas rasterizing draw commands into an RGBA image.
type Image struct {
	rgba *image.RGBA
}

var _ lsysdraw.Canvas = (*Image)(nil)

// NewImage creates a background-filled canvas of the given pixel size.
func NewImage(width, height int, background lsysdraw.RGB) *Image {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(toNRGBA(background)), image.Point{}, draw.Src)
	return &Image{rgba: rgba}
}

// DrawLine stamps a square brush of the pen width along the segment.
// Segments reaching outside the image are clipped pixel by pixel.
func (img *Image) DrawLine(from, to lsysdraw.Point, penColor lsysdraw.RGB, width float64) error {
	c := toNRGBA(penColor)

	// Brush reach on each side of the center pixel.
	radius := int(math.Round((width - 1) / 2))
	if radius < 0 {
		radius = 0
	}

	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Hypot(dx, dy)

	// Two samples per pixel of travel keeps the stroke gapless at any
	// heading.
	samples := int(math.Ceil(length * 2))
	if samples < 1 {
		samples = 1
	}
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		img.stamp(from.X+dx*t, from.Y+dy*t, radius, c)
	}
	return nil
}

func (img *Image) stamp(x, y float64, radius int, c color.NRGBA) {
	cx := int(math.Round(x))
	cy := int(math.Round(y))
	for ox := -radius; ox <= radius; ox++ {
		for oy := -radius; oy <= radius; oy++ {
			img.rgba.Set(cx+ox, cy+oy, c)
		}
	}
}

// RGBA exposes the backing image.
func (img *Image) RGBA() *image.RGBA {
	return img.rgba
}

// EncodePNG writes the canvas out as a PNG.
func (img *Image) EncodePNG(w io.Writer) error {
	return png.Encode(w, img.rgba)
}

func toNRGBA(c lsysdraw.RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
