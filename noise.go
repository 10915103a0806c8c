package lowpoly

import (
	"image"
	"math"
)

// Noise adds a grain to the image, like the grain filter of photo editors.
// Amount is the strength of the grain; zero disables it. The grain comes from
// a fixed seed, so the same input always gets the same grain.
type Noise struct {
	Amount int
}

// Apply implements Filter.
func (f Noise) Apply(img *image.NRGBA) *image.NRGBA {
	if f.Amount <= 0 {
		return img
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	rnd := newPRNG(1)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			noise := (rnd.float() - 0.1) * float64(f.Amount)
			si := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
			di := dst.PixOffset(x, y)

			rf := float64(img.Pix[si+0])
			gf := float64(img.Pix[si+1])
			bf := float64(img.Pix[si+2])
			// Leave the pixel alone if any channel would overflow.
			if math.Abs(rf+noise) < 255 && math.Abs(gf+noise) < 255 && math.Abs(bf+noise) < 255 {
				rf += noise
				gf += noise
				bf += noise
			}
			dst.Pix[di+0] = uint8(Clamp(rf, 0, 255))
			dst.Pix[di+1] = uint8(Clamp(gf, 0, 255))
			dst.Pix[di+2] = uint8(Clamp(bf, 0, 255))
			dst.Pix[di+3] = img.Pix[si+3]
		}
	}
	return dst
}

// prng is the Park-Miller minimal standard generator.
type prng struct {
	a, m  int
	state int
	div   float64
}

func newPRNG(seed int) *prng {
	return &prng{
		a:     16807,
		m:     0x7fffffff,
		state: seed,
		div:   1.0 / 0x7fffffff,
	}
}

func (p *prng) next(seed int) int {
	lo := p.a * (seed & 0xffff)
	hi := p.a * (seed >> 16)
	lo += (hi & 0x7fff) << 16

	if lo > p.m {
		lo &= p.m
		lo++
	}
	lo += hi >> 15
	if lo > p.m {
		lo &= p.m
		lo++
	}
	return lo
}

func (p *prng) float() float64 {
	p.state = p.next(p.state)
	return float64(p.state) * p.div
}
