package lowpoly

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// anchorCount is the number of fixed points placed on the image border.
const anchorCount = 8

// Point is a position in raster space.
type Point struct {
	X, Y float64
}

// GeneratePoints returns the point set the triangulation is built on: the
// eight border anchors (corners and edge midpoints) followed by count points
// drawn uniformly from [0, width) x [0, height).
//
// The anchors keep the convex hull of the set equal to the whole image, so no
// region near the edges stays unpainted. A nil rnd uses a time seeded source.
func GeneratePoints(width, height, count int, rnd *rand.Rand) ([]Point, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrEmptyImage, "canvas %dx%d", width, height)
	}
	if count < 0 {
		return nil, errors.Wrapf(ErrInvalidOptions, "point count %d", count)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w, h := float64(width), float64(height)
	maxX, maxY := w-1, h-1

	points := make([]Point, 0, anchorCount+count)
	for _, p := range []Point{
		{0, 0}, {w / 2, 0}, {maxX, 0},
		{0, h / 2}, {maxX, h / 2},
		{0, maxY}, {w / 2, maxY}, {maxX, maxY},
	} {
		points = append(points, Point{
			X: Clamp(p.X, 0, maxX),
			Y: Clamp(p.Y, 0, maxY),
		})
	}

	for i := 0; i < count; i++ {
		x := rnd.Float64() * w
		y := rnd.Float64() * h
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}
