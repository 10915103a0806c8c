package lowpoly

import (
	"image"
	"math"
)

// Filter is a post-processing step applied to the composed image.
type Filter interface {
	// Apply returns the filtered image. It may modify and return img.
	Apply(img *image.NRGBA) *image.NRGBA
}

// Filters is a list of filters that can be applied to an image at once.
type Filters []Filter

// Apply applies all the filters in order.
func (fs Filters) Apply(img *image.NRGBA) *image.NRGBA {
	for _, f := range fs {
		img = f.Apply(img)
	}
	return img
}

// Blur is a separable Gaussian blur. Radius is the standard deviation in
// pixels; a zero radius leaves the image untouched. Pixels outside the image
// repeat the nearest edge pixel.
//
// Color channels are weighted by alpha while blurring, so transparent pixels
// do not darken their neighbours.
type Blur struct {
	Radius float64
}

// Apply implements Filter.
func (f Blur) Apply(img *image.NRGBA) *image.NRGBA {
	if f.Radius <= 0 {
		return img
	}
	kernel := gaussianKernel(f.Radius)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	// Premultiplied working buffer, 4 floats per pixel.
	buf := make([]float32, w*h*4)
	for y := 0; y < h; y++ {
		si := img.PixOffset(img.Bounds().Min.X, img.Bounds().Min.Y+y)
		for x := 0; x < w; x++ {
			a := float32(img.Pix[si+3]) / 255
			bi := (y*w + x) * 4
			buf[bi+0] = float32(img.Pix[si+0]) * a
			buf[bi+1] = float32(img.Pix[si+1]) * a
			buf[bi+2] = float32(img.Pix[si+2]) * a
			buf[bi+3] = float32(img.Pix[si+3])
			si += 4
		}
	}

	tmp := make([]float32, len(buf))
	convolve(buf, tmp, w, h, kernel, true)
	convolve(tmp, buf, w, h, kernel, false)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		bi, di := i*4, i*4
		a := buf[bi+3]
		if a < 0.5 {
			continue
		}
		k := 255 / a
		dst.Pix[di+0] = uint8(Clamp(buf[bi+0]*k+0.5, 0, 255))
		dst.Pix[di+1] = uint8(Clamp(buf[bi+1]*k+0.5, 0, 255))
		dst.Pix[di+2] = uint8(Clamp(buf[bi+2]*k+0.5, 0, 255))
		dst.Pix[di+3] = uint8(Clamp(a+0.5, 0, 255))
	}
	return dst
}

// convolve runs a 1D kernel over src along rows (horizontal) or columns.
func convolve(src, dst []float32, w, h int, kernel []float32, horizontal bool) {
	r := len(kernel) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa float32
			for k := -r; k <= r; k++ {
				sx, sy := x, y
				if horizontal {
					sx = Clamp(x+k, 0, w-1)
				} else {
					sy = Clamp(y+k, 0, h-1)
				}
				v := kernel[k+r]
				si := (sy*w + sx) * 4
				sr += src[si+0] * v
				sg += src[si+1] * v
				sb += src[si+2] * v
				sa += src[si+3] * v
			}
			di := (y*w + x) * 4
			dst[di+0] = sr
			dst[di+1] = sg
			dst[di+2] = sb
			dst[di+3] = sa
		}
	}
}

// gaussianKernel returns a normalized 1D Gaussian kernel covering three
// standard deviations on each side.
func gaussianKernel(sigma float64) []float32 {
	r := int(math.Ceil(sigma * 3))
	kernel := make([]float32, 2*r+1)

	var sum float64
	values := make([]float64, len(kernel))
	for i := -r; i <= r; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		values[i+r] = v
		sum += v
	}
	for i, v := range values {
		kernel[i] = float32(v / sum)
	}
	return kernel
}
