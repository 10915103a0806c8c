package lowpoly

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(p *Processor, seed int64) *Processor {
	p.Rand = rand.New(rand.NewSource(seed))
	return p
}

func TestProcessor_InvalidOptions(t *testing.T) {
	src := gradient(20, 20)
	cases := map[string]func(p *Processor){
		"point count":  func(p *Processor) { p.PointCount = -5 },
		"blur radius":  func(p *Processor) { p.BlurRadius = -1 },
		"stroke width": func(p *Processor) { p.StrokeWidth = -0.5 },
		"noise":        func(p *Processor) { p.Noise = -3 },
		"wireframe":    func(p *Processor) { p.Wireframe = 3 },
		"backend":      func(p *Processor) { p.Backend = Backend(9) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewProcessor()
			mutate(p)
			img, err := p.Render(src)
			assert.ErrorIs(t, err, ErrInvalidOptions)
			assert.Nil(t, img)
		})
	}
}

func TestProcessor_InvalidOptionsBeforeEmptyImage(t *testing.T) {
	p := NewProcessor()
	p.PointCount = -1
	_, err := p.Render(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestProcessor_EmptyImage(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 0, 50),
		image.Rect(0, 0, 50, 0),
		image.Rect(5, 5, 5, 5),
	} {
		img, err := NewProcessor().Render(image.NewNRGBA(r))
		assert.ErrorIs(t, err, ErrEmptyImage)
		assert.Nil(t, img)
	}
}

func TestProcessor_Dimensions(t *testing.T) {
	for _, size := range []image.Point{{1, 1}, {1, 30}, {30, 1}, {2, 2}, {73, 41}} {
		src := gradient(size.X, size.Y)
		img, err := seeded(NewProcessor(), 1).Render(src)
		require.NoError(t, err, "size %v", size)
		assert.Equal(t, image.Rect(0, 0, size.X, size.Y), img.Bounds())
	}
}

func TestProcessor_SmallImageFullyPainted(t *testing.T) {
	p := &Processor{PointCount: 0}
	img, err := p.Render(gradient(2, 2))
	require.NoError(t, err)
	assert.Zero(t, countAlpha(img, func(a uint8) bool { return a == 0 }))
}

func TestProcessor_LineImageIsTransparent(t *testing.T) {
	// Without interior points every anchor lies on one line.
	img, err := Render(gradient(1, 30), Processor{})
	require.NoError(t, err)
	assert.Equal(t, len(img.Pix)/4, countAlpha(img, func(a uint8) bool { return a == 0 }))
}

func TestProcessor_SourceUntouched(t *testing.T) {
	src := gradient(40, 30)
	before := append([]uint8(nil), src.Pix...)

	p := seeded(NewProcessor(), 2)
	p.Grayscale = true
	p.Noise = 10
	_, err := p.Render(src)
	require.NoError(t, err)
	assert.Equal(t, before, src.Pix)
}

func TestProcessor_Deterministic(t *testing.T) {
	src := gradient(90, 60)
	for _, backend := range backends {
		a := seeded(NewProcessor(), 42)
		a.Backend = backend
		b := seeded(NewProcessor(), 42)
		b.Backend = backend

		imgA, err := a.Render(src)
		require.NoError(t, err)
		imgB, err := b.Render(src)
		require.NoError(t, err)
		assert.Equal(t, imgA.Pix, imgB.Pix, backend.String())
	}
}

func TestProcessor_WorkersMatchSerial(t *testing.T) {
	src := gradient(100, 100)
	serial := seeded(NewProcessor(), 9)
	serial.Workers = 1
	parallel := seeded(NewProcessor(), 9)
	parallel.Workers = 4

	a, err := serial.Render(src)
	require.NoError(t, err)
	b, err := parallel.Render(src)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestProcessor_Grayscale(t *testing.T) {
	p := seeded(NewProcessor(), 3)
	p.Grayscale = true
	img, err := p.Render(gradient(60, 60))
	require.NoError(t, err)

	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
		require.Equal(t, r, g)
		require.Equal(t, g, b)
	}
}

func TestProcessor_UniformSource(t *testing.T) {
	src := image.NewUniform(color.NRGBA{R: 90, G: 60, B: 30, A: 0xff})
	img, err := seeded(NewProcessor(), 5).Render(&boundedUniform{src, image.Rect(0, 0, 50, 40)})
	require.NoError(t, err)

	for y := 0; y < 40; y++ {
		for x := 0; x < 50; x++ {
			c := img.NRGBAAt(x, y)
			require.NotZero(t, c.A)
			assert.InDelta(t, 90, c.R, 3)
			assert.InDelta(t, 60, c.G, 3)
			assert.InDelta(t, 30, c.B, 3)
		}
	}
}

func TestProcessor_SubImage(t *testing.T) {
	src := gradient(60, 60).SubImage(image.Rect(10, 20, 40, 50))
	img, err := seeded(NewProcessor(), 1).Render(src)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 30), img.Bounds())
}

func TestProcessor_ZeroValue(t *testing.T) {
	img, err := Render(gradient(16, 16), Processor{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}

// boundedUniform is a uniform color limited to a rectangle.
type boundedUniform struct {
	*image.Uniform
	r image.Rectangle
}

func (u *boundedUniform) Bounds() image.Rectangle { return u.r }
