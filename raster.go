package lowpoly

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

// Wireframe modes.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// wireColor is the stroke color of WithWireframe.
var wireColor = color.NRGBA{R: 0, G: 0, B: 0, A: 20}

// CompositeOptions controls how Composite paints the triangles.
type CompositeOptions struct {
	Wireframe   int
	StrokeWidth float64
	// Background fills the canvas before painting. Nil keeps it transparent.
	Background color.Color
	Backend    Backend
	// Filters run over the finished image.
	Filters Filters
}

// Composite paints every triangle of d with its color, in triangulation
// order, onto a new width x height image. colors[i] is the color of the i-th
// triangle.
//
// The border anchors span [0, width-1] x [0, height-1]; coordinates are scaled
// so that this hull covers the whole canvas and the last row and column are
// painted too.
func Composite(d *Delaunay, points []Point, colors []color.NRGBA, width, height int, opts CompositeOptions) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrEmptyImage, "canvas %dx%d", width, height)
	}
	if len(colors) != d.Len() {
		return nil, errors.Wrapf(ErrDegenerateInput, "%d colors for %d triangles", len(colors), d.Len())
	}
	for _, i := range d.Triangles {
		if i < 0 || i >= len(points) {
			return nil, errors.Wrapf(ErrDegenerateInput, "triangle index %d out of %d points", i, len(points))
		}
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if opts.Background != nil {
		draw.Draw(rgba, rgba.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	c := newCanvas(opts.Backend, rgba)

	sx, sy := 1.0, 1.0
	if width > 1 {
		sx = float64(width) / float64(width-1)
	}
	if height > 1 {
		sy = float64(height) / float64(height-1)
	}
	device := func(i int) Point {
		return Point{X: points[i].X * sx, Y: points[i].Y * sy}
	}

	for i := 0; i < d.Len(); i++ {
		t := d.Triangle(i)
		p0, p1, p2 := device(t[0]), device(t[1]), device(t[2])

		switch opts.Wireframe {
		case WithoutWireframe:
			c.fill(p0, p1, p2, colors[i])
		case WithWireframe:
			c.fill(p0, p1, p2, colors[i])
			c.stroke(p0, p1, p2, wireColor, opts.StrokeWidth)
		case WireframeOnly:
			c.stroke(p0, p1, p2, colors[i], opts.StrokeWidth)
		}
	}

	return opts.Filters.Apply(ImgToNRGBA(rgba)), nil
}
