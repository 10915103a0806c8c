package lowpoly

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Default processing options.
const (
	DefaultPointCount  = 500
	DefaultBlurRadius  = 1.0
	DefaultStrokeWidth = 1.0
)

// Processor holds the options of the low-poly transformation. The zero value
// is valid and renders with no interior points and no blur; NewProcessor
// returns the usual defaults.
type Processor struct {
	// PointCount is the number of random interior points added to the eight
	// border anchors.
	PointCount int
	// BlurRadius is the standard deviation of the Gaussian blur applied after
	// painting. Zero disables it.
	BlurRadius float64
	// Grayscale samples the triangle colors from the grayscale source.
	Grayscale bool
	// Wireframe is one of WithoutWireframe, WithWireframe, WireframeOnly.
	Wireframe   int
	StrokeWidth float64
	// Noise is the grain strength added at the end. Zero disables it.
	Noise      int
	Background color.Color
	Backend    Backend
	// Workers is the number of goroutines sampling triangle colors.
	Workers int
	// Rand is the source of the interior points. Nil means a new time seeded
	// source on every call.
	Rand *rand.Rand
}

// NewProcessor returns a Processor with the default options.
func NewProcessor() *Processor {
	return &Processor{
		PointCount:  DefaultPointCount,
		BlurRadius:  DefaultBlurRadius,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// Validate reports the first option out of range.
func (p *Processor) Validate() error {
	switch {
	case p.PointCount < 0:
		return errors.Wrapf(ErrInvalidOptions, "point count %d", p.PointCount)
	case p.BlurRadius < 0:
		return errors.Wrapf(ErrInvalidOptions, "blur radius %g", p.BlurRadius)
	case p.StrokeWidth < 0:
		return errors.Wrapf(ErrInvalidOptions, "stroke width %g", p.StrokeWidth)
	case p.Noise < 0:
		return errors.Wrapf(ErrInvalidOptions, "noise %d", p.Noise)
	case p.Wireframe < WithoutWireframe || p.Wireframe > WireframeOnly:
		return errors.Wrapf(ErrInvalidOptions, "wireframe mode %d", p.Wireframe)
	case p.Backend != BackendGG && p.Backend != BackendVector:
		return errors.Wrapf(ErrInvalidOptions, "backend %d", p.Backend)
	}
	return nil
}

// Render turns src into a low-poly image of the same size: random points are
// triangulated, each triangle takes the source color under its centroid and
// the triangles are painted onto a new image.
//
// src is never modified. Every call is independent; on error no image is
// returned.
func (p *Processor) Render(src image.Image) (*image.NRGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrEmptyImage, "image %dx%d", width, height)
	}

	log := Logger()
	start := time.Now()

	img := ImgToNRGBA(src)
	if p.Grayscale {
		img = Grayscale(img)
	}

	points, err := GeneratePoints(width, height, p.PointCount, p.Rand)
	if err != nil {
		return nil, err
	}

	delaunay, err := Triangulate(points)
	if err != nil {
		return nil, err
	}
	log.Debug("triangulated",
		"points", len(points),
		"triangles", delaunay.Len(),
		"hull", len(delaunay.Hull),
		"elapsed", time.Since(start),
	)

	colors := sampleColors(delaunay, points, img, p.Workers)

	out, err := Composite(delaunay, points, colors, width, height, CompositeOptions{
		Wireframe:   p.Wireframe,
		StrokeWidth: p.StrokeWidth,
		Background:  p.Background,
		Backend:     p.Backend,
		Filters: Filters{
			Blur{Radius: p.BlurRadius},
			Noise{Amount: p.Noise},
		},
	})
	if err != nil {
		return nil, err
	}
	log.Debug("rendered",
		"width", width,
		"height", height,
		"backend", p.Backend,
		"elapsed", time.Since(start),
	)
	return out, nil
}

// Render is a shorthand for p.Render(src).
func Render(src image.Image, p Processor) (*image.NRGBA, error) {
	return p.Render(src)
}
