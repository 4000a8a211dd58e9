package colour

import (
	"fmt"
	"math"
)

const (
	// MinColours is the smallest palette size a caller may request.
	MinColours = 1

	// MaxColours is the largest palette size a caller may request.
	MaxColours = 20

	// DefaultColours is the palette size used when none is given.
	DefaultColours = 10

	// HueSliderMax is the top of the 0-100 hue slider scale.
	HueSliderMax = 100
)

// Settings holds the user-facing parameters for palette generation.
type Settings struct {
	// Count is the number of colours per palette.
	Count int `json:"colours"`

	// HighVariety selects the 64 wide quantization grid instead of 32.
	HighVariety bool `json:"high_variety"`

	// Muller enables hue harmonisation.
	Muller bool `json:"muller"`

	// HueOffset is the global hue rotation as a fraction of a turn, in [0,1).
	HueOffset float64 `json:"hue_offset"`
}

// DefaultSettings returns the default generation settings.
func DefaultSettings() Settings {
	return Settings{
		Count:       DefaultColours,
		HighVariety: false,
		Muller:      false,
		HueOffset:   0,
	}
}

// ClampCount limits a requested palette size to [MinColours, MaxColours].
func ClampCount(n int) int {
	return min(max(n, MinColours), MaxColours)
}

// HueOffsetFromSlider converts a 0-100 slider position into a hue offset.
// Out of range positions are clamped, so the result has a resolution of 0.01.
func HueOffsetFromSlider(v int) float64 {
	v = min(max(v, 0), HueSliderMax)
	return float64(v) / HueSliderMax
}

// Normalise clamps the count and wraps the hue offset into [0,1).
func (s Settings) Normalise() Settings {
	s.Count = ClampCount(s.Count)
	if math.IsNaN(s.HueOffset) || math.IsInf(s.HueOffset, 0) {
		s.HueOffset = 0
	}
	s.HueOffset = wrapUnit(s.HueOffset)
	return s
}

// Validate reports settings that would have to be clamped.
func (s Settings) Validate() error {
	if s.Count < MinColours {
		return fmt.Errorf("colour count must be at least %d, got %d", MinColours, s.Count)
	}
	if s.Count > MaxColours {
		return fmt.Errorf("colour count too large: %d (maximum: %d)", s.Count, MaxColours)
	}
	if math.IsNaN(s.HueOffset) || s.HueOffset < 0 || s.HueOffset >= 1 {
		return fmt.Errorf("hue offset must be in [0, 1), got %v", s.HueOffset)
	}
	return nil
}

// NeedsRebucket reports whether moving from s to next invalidates a bucket
// list computed under s. Only the quantization grid affects the buckets.
func (s Settings) NeedsRebucket(next Settings) bool {
	return s.HighVariety != next.HighVariety
}
