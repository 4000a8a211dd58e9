package colour

import "math"

// MullerStep is the largest hue change a single harmonisation pass makes.
const MullerStep = 0.075

// Muller anchors, index aligned: the lightness each anchor hue is expected at.
var (
	mullerLightness = [10]float64{0.65, 0.75, 0.90, 0.75, 0.65, 0.50, 0.35, 0.20, 0.35, 0.50}
	mullerHue       = [10]float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
)

// Harmonize nudges hue h toward the anchor whose expected lightness is
// closest to l. Hues within MullerStep of the anchor snap to it, all others
// move by exactly one step. Saturation and lightness are never changed.
func Harmonize(h, l float64) float64 {
	target := mullerHue[mullerAnchorIndex(h, l)]

	diff := target - h
	if math.Abs(diff) < MullerStep {
		return target
	}
	if diff < 0 {
		return math.Mod(h+MullerStep, 1)
	}
	return math.Mod(h-MullerStep+1, 1)
}

// mullerAnchorIndex picks the anchor for (h, l).
//
// Only one alternate is tracked: with three or more exact lightness ties the
// first closest index is compared against the last tying index only.
func mullerAnchorIndex(h, l float64) int {
	smallest := 10.0
	closest := 2
	tie := -1

	for i, anchorL := range mullerLightness {
		d := math.Abs(anchorL - l)
		if d < smallest {
			smallest = d
			closest = i
			tie = -1
		} else if d == smallest {
			tie = i
		}
	}

	if tie == -1 {
		return closest
	}
	if mullerHueDistance(h, mullerHue[tie]) < mullerHueDistance(h, mullerHue[closest]) {
		return tie
	}
	return closest
}

// mullerHueDistance is |h - anchor| folded once by half a turn. It is not
// the circular distance min(d, 1-d).
func mullerHueDistance(h, anchor float64) float64 {
	d := math.Abs(h - anchor)
	if d >= 0.5 {
		d -= 0.5
	}
	return d
}
