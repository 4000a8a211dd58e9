package colour

import (
	"image"
	"image/color"
)

// Pixels returns the image's pixels in row-major order. Channels are read
// non-premultiplied and alpha is dropped.
func Pixels(img image.Image) []RGB {
	bounds := img.Bounds()
	pixels := make([]RGB, 0, bounds.Dx()*bounds.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, y):]
			for x := 0; x < bounds.Dx(); x++ {
				pixels = append(pixels, RGB{R: row[x*4], G: row[x*4+1], B: row[x*4+2]})
			}
		}
		return pixels
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels = append(pixels, RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return pixels
}
