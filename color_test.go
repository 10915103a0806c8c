package lowpoly

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns a w x h image where every pixel has a distinct color.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 0xff})
		}
	}
	return img
}

func TestSampleColor_Centroid(t *testing.T) {
	src := gradient(10, 10)
	points := []Point{{0, 0}, {3, 0}, {0, 3}, {5.9, 6.9}, {6, 7}, {6.2, 7.3}}

	// Centroid (1, 1).
	c := SampleColor(Triangle{0, 1, 2}, points, src)
	assert.Equal(t, color.NRGBA{R: 1, G: 1, B: 0, A: 0xff}, c)

	// Centroid (6.03, 7.07) is floored to (6, 7).
	c = SampleColor(Triangle{3, 4, 5}, points, src)
	assert.Equal(t, color.NRGBA{R: 6, G: 7, B: 6 ^ 7, A: 0xff}, c)
}

func TestSampleColor_ClampsToImage(t *testing.T) {
	src := gradient(4, 3)
	points := []Point{{-9, -9}, {-6, -3}, {-3, -6}, {20, 20}, {30, 20}, {25, 30}}

	c := SampleColor(Triangle{0, 1, 2}, points, src)
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 0, A: 0xff}, c)

	c = SampleColor(Triangle{3, 4, 5}, points, src)
	assert.Equal(t, color.NRGBA{R: 3, G: 2, B: 3 ^ 2, A: 0xff}, c)
}

func TestSampleColor_Opaque(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	points := []Point{{0, 0}, {1, 0}, {0, 1}}

	c := SampleColor(Triangle{0, 1, 2}, points, src)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, c)
}

func TestSampleColor_SubImage(t *testing.T) {
	src := gradient(20, 20).SubImage(image.Rect(5, 5, 15, 15)).(*image.NRGBA)
	points := []Point{{0, 0}, {3, 0}, {0, 3}}

	c := SampleColor(Triangle{0, 1, 2}, points, src)
	assert.Equal(t, color.NRGBA{R: 6, G: 6, B: 0, A: 0xff}, c)
}

func TestSampleColor_Idempotent(t *testing.T) {
	src := gradient(64, 64)
	points, err := GeneratePoints(64, 64, 100, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	d, err := Triangulate(points)
	require.NoError(t, err)

	for i := 0; i < d.Len(); i++ {
		tr := d.Triangle(i)
		assert.Equal(t, SampleColor(tr, points, src), SampleColor(tr, points, src))
	}
}

func TestSampleColors_ParallelMatchesSerial(t *testing.T) {
	src := gradient(128, 128)
	points, err := GeneratePoints(128, 128, 400, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	d, err := Triangulate(points)
	require.NoError(t, err)

	serial := sampleColors(d, points, src, 1)
	require.Len(t, serial, d.Len())
	for _, workers := range []int{2, 3, 8} {
		assert.Equal(t, serial, sampleColors(d, points, src, workers))
	}
}
