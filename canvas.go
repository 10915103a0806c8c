package lowpoly

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/vector"
)

// Backend selects the rasterizer used to paint the triangles.
type Backend int

const (
	// BackendGG paints with fogleman/gg.
	BackendGG Backend = iota
	// BackendVector paints with golang.org/x/image/vector.
	BackendVector
)

func (b Backend) String() string {
	switch b {
	case BackendGG:
		return "gg"
	case BackendVector:
		return "vector"
	}
	return "unknown"
}

// ParseBackend maps a backend name to its value.
func ParseBackend(name string) (Backend, bool) {
	switch name {
	case "gg", "":
		return BackendGG, true
	case "vector":
		return BackendVector, true
	}
	return 0, false
}

// canvas paints solid triangles in device space onto an *image.RGBA. Both
// operations composite with the "over" operator and an anti-aliased,
// non-zero fill rule.
type canvas interface {
	fill(a, b, c Point, col color.NRGBA)
	stroke(a, b, c Point, col color.NRGBA, width float64)
}

func newCanvas(backend Backend, dst *image.RGBA) canvas {
	if backend == BackendVector {
		return &vectorCanvas{dst: dst, r: vector.NewRasterizer(0, 0)}
	}
	return &ggCanvas{dc: gg.NewContextForRGBA(dst)}
}

type ggCanvas struct {
	dc *gg.Context
}

func (c *ggCanvas) path(a, b, p Point) {
	c.dc.MoveTo(a.X, a.Y)
	c.dc.LineTo(b.X, b.Y)
	c.dc.LineTo(p.X, p.Y)
	c.dc.ClosePath()
}

func (c *ggCanvas) fill(a, b, p Point, col color.NRGBA) {
	c.path(a, b, p)
	c.dc.SetFillStyle(gg.NewSolidPattern(col))
	c.dc.Fill()
}

func (c *ggCanvas) stroke(a, b, p Point, col color.NRGBA, width float64) {
	c.path(a, b, p)
	c.dc.SetStrokeStyle(gg.NewSolidPattern(col))
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

// vectorCanvas rasterizes each shape inside its own bounding box, so the
// per-shape cost is proportional to the shape and not to the canvas.
type vectorCanvas struct {
	dst *image.RGBA
	r   *vector.Rasterizer
}

func (c *vectorCanvas) fill(a, b, p Point, col color.NRGBA) {
	c.polygon(col, a, b, p)
}

// stroke draws every edge as a quad of the given width. Corners are left
// unjoined.
func (c *vectorCanvas) stroke(a, b, p Point, col color.NRGBA, width float64) {
	vs := [3]Point{a, b, p}
	for i := range vs {
		u, v := vs[i], vs[(i+1)%3]
		dx, dy := v.X-u.X, v.Y-u.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*width/2, dx/l*width/2
		c.polygon(col,
			Point{u.X + nx, u.Y + ny},
			Point{v.X + nx, v.Y + ny},
			Point{v.X - nx, v.Y - ny},
			Point{u.X - nx, u.Y - ny},
		)
	}
}

func (c *vectorCanvas) polygon(col color.NRGBA, pts ...Point) {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	rect := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(c.dst.Bounds())
	if rect.Empty() {
		return
	}

	ox, oy := float64(rect.Min.X), float64(rect.Min.Y)
	c.r.Reset(rect.Dx(), rect.Dy())
	c.r.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		c.r.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	c.r.ClosePath()
	c.r.Draw(c.dst, rect, image.NewUniform(col), image.Point{})
}
