// Package colour provides colour quantization and palette generation functionality.
package colour

import (
	"fmt"
	"math"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// HSL holds a colour in HSL space. All three components are fractions:
// hue in [0,1), saturation and lightness in [0,1].
type HSL struct {
	H float64
	S float64
	L float64
}

// ToHex formats three channel values as "#rrggbb", rounding each channel
// to the nearest integer first.
func ToHex(r, g, b float64) string {
	return RGB{R: roundChannel(r), G: roundChannel(g), B: roundChannel(b)}.Hex()
}

// RGBToHSL converts RGB to HSL colour space.
// Channels are in [0,255] and may be fractional (bucket means are not rounded).
// Achromatic colours return a hue and saturation of 0.
func RGBToHSL(r, g, b float64) HSL {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))

	// Lightness.
	l := (maxVal + minVal) / 2.0

	if maxVal == minVal {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxVal - minVal

	// Saturation.
	var s float64
	if l > 0.5 {
		s = d / (2.0 - maxVal - minVal)
	} else {
		s = d / (maxVal + minVal)
	}

	// Hue, in sextants before the final division.
	var h float64
	switch maxVal {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}

	return HSL{H: h / 6, S: s, L: l}
}

// HSLToRGB converts HSL to RGB colour space, rounding to the nearest integer.
func HSLToRGB(c HSL) RGB {
	if c.S == 0 {
		// Achromatic (grey).
		v := roundChannel(c.L * 255)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q

	r := hueToRGB(p, q, c.H+1.0/3.0)
	g := hueToRGB(p, q, c.H)
	b := hueToRGB(p, q, c.H-1.0/3.0)

	return RGB{
		R: roundChannel(r * 255),
		G: roundChannel(g * 255),
		B: roundChannel(b * 255),
	}
}

// hueToRGB is a helper for HSL to RGB conversion. t is a hue fraction.
func hueToRGB(p, q, t float64) float64 {
	t = wrapUnit(t)

	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// wrapUnit brings t into [0,1) by whole turns.
func wrapUnit(t float64) float64 {
	t = math.Mod(t, 1)
	if t < 0 {
		t++
	}
	// -1e-17 + 1 rounds to exactly 1.
	if t >= 1 {
		t = 0
	}
	return t
}

// roundChannel rounds a [0,255] value to the nearest integer and clamps it.
func roundChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
