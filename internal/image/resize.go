package image

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/palettegen/internal/colour"
)

// MaxDimension is the longest side an image is reduced to before sampling.
const MaxDimension = 600

// FitWithin returns the size of a w×h image scaled so its longer side is at
// most maxDim, keeping the aspect ratio. The shorter side is truncated and
// never drops below one pixel. Images already within bounds keep their size.
func FitWithin(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w > h {
		return maxDim, max(1, int(float64(h)/float64(w)*float64(maxDim)))
	}
	return max(1, int(float64(w)/float64(h)*float64(maxDim))), maxDim
}

// Downsample scales img so neither side exceeds maxDim. Images already
// within bounds are returned unchanged.
func Downsample(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Pixels downsamples img to MaxDimension and returns its pixels in row-major order.
func Pixels(img image.Image) []colour.RGB {
	return colour.Pixels(Downsample(img, MaxDimension))
}
