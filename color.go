package lowpoly

import (
	"image"
	"image/color"
	"math"
	"sync"
)

// SampleColor returns the fill color of t: the source pixel under the
// triangle's centroid. The centroid is floored to integer coordinates and
// clamped to the image, so border triangles always hit a valid pixel.
//
// Only one pixel is read. The result is not an average over the triangle area
// and may be noisy on textured regions. The returned color is opaque.
func SampleColor(t Triangle, points []Point, src *image.NRGBA) color.NRGBA {
	p0, p1, p2 := points[t[0]], points[t[1]], points[t[2]]

	b := src.Bounds()
	cx := int(math.Floor((p0.X + p1.X + p2.X) / 3))
	cy := int(math.Floor((p0.Y + p1.Y + p2.Y) / 3))
	cx = Clamp(cx, 0, b.Dx()-1)
	cy = Clamp(cy, 0, b.Dy()-1)

	i := src.PixOffset(b.Min.X+cx, b.Min.Y+cy)
	return color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: 0xff}
}

// sampleColors computes the color of every triangle of d. With workers > 1 the
// triangles are split in contiguous chunks; each chunk writes its own slots
// of the result and only reads src.
func sampleColors(d *Delaunay, points []Point, src *image.NRGBA, workers int) []color.NRGBA {
	n := d.Len()
	colors := make([]color.NRGBA, n)

	if workers <= 1 || n < 2*workers {
		for i := 0; i < n; i++ {
			colors[i] = SampleColor(d.Triangle(i), points, src)
		}
		return colors
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := Min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				colors[i] = SampleColor(d.Triangle(i), points, src)
			}
		}(lo, hi)
	}
	wg.Wait()
	return colors
}
