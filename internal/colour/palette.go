package colour

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ColorSample is one generated palette colour.
type ColorSample struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// NewColorSample builds a sample from an RGB value, filling in the hex form.
func NewColorSample(rgb RGB) ColorSample {
	return ColorSample{R: rgb.R, G: rgb.G, B: rgb.B, Hex: rgb.Hex()}
}

// RGB returns the channels of the sample.
func (c ColorSample) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Palette is an ordered sequence of colours, most frequent bucket first.
type Palette []ColorSample

// Len returns the number of colours in the palette.
func (p Palette) Len() int {
	return len(p)
}

// ToHex returns the palette as hex strings (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p Palette) ToHex() []string {
	hexColours := make([]string, len(p))
	for i, c := range p {
		hexColours[i] = c.Hex
	}
	return hexColours
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p Palette) Get(index int) (ColorSample, error) {
	if index < 0 || index >= len(p) {
		return ColorSample{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p))
	}
	return p[index], nil
}

// String returns a human-readable representation of the palette.
func (p Palette) String() string {
	if len(p) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p))
	for i, c := range p {
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i+1, c.Hex, c.RGB().String())
	}
	return sb.String()
}

// DisplayMode selects how a colour is rendered as text.
type DisplayMode string

const (
	// DisplayHex renders "#rrggbb".
	DisplayHex DisplayMode = "hex"
	// DisplayRGB renders "rgb(r, g, b)".
	DisplayRGB DisplayMode = "rgb"
	// DisplayHSL renders "hsl(h, s%, l%)".
	DisplayHSL DisplayMode = "hsl"
)

// DisplayModes returns the valid display modes.
func DisplayModes() []DisplayMode {
	return []DisplayMode{DisplayHex, DisplayRGB, DisplayHSL}
}

// ParseDisplayMode parses a display mode name, case-insensitively.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch m := DisplayMode(strings.ToLower(strings.TrimSpace(s))); m {
	case DisplayHex, DisplayRGB, DisplayHSL:
		return m, nil
	default:
		return "", fmt.Errorf("unknown display mode: %s (valid modes: %v)", s, DisplayModes())
	}
}

// Format renders a colour in the given display mode. Unknown modes fall
// back to hex.
func Format(c ColorSample, mode DisplayMode) string {
	switch mode {
	case DisplayRGB:
		return c.RGB().String()
	case DisplayHSL:
		hsl := RGBToHSL(float64(c.R), float64(c.G), float64(c.B))
		h := int(math.Round(hsl.H*360)) % 360
		return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, int(math.Round(hsl.S*100)), int(math.Round(hsl.L*100)))
	default:
		return c.Hex
	}
}

// Strings renders every colour in the palette in the given mode.
func (p Palette) Strings(mode DisplayMode) []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = Format(c, mode)
	}
	return out
}

// PaletteJSON represents a pair of palettes in JSON output format.
type PaletteJSON struct {
	Count         int          `json:"count"`
	Buckets       int          `json:"buckets"`
	Settings      Settings     `json:"settings"`
	Primary       []ColourJSON `json:"primary"`
	Complementary []ColourJSON `json:"complementary"`
}

// ColourJSON represents one colour in JSON output format.
type ColourJSON struct {
	ColorSample
	Display string `json:"display"`
}

// NewPaletteJSON builds the JSON document for a generation result.
func NewPaletteJSON(p Palettes, buckets int, s Settings, mode DisplayMode) PaletteJSON {
	convert := func(pal Palette) []ColourJSON {
		out := make([]ColourJSON, len(pal))
		for i, c := range pal {
			out[i] = ColourJSON{ColorSample: c, Display: Format(c, mode)}
		}
		return out
	}

	return PaletteJSON{
		Count:         len(p.Primary),
		Buckets:       buckets,
		Settings:      s,
		Primary:       convert(p.Primary),
		Complementary: convert(p.Complementary),
	}
}

// ToJSON converts the palettes to indented JSON.
func (p Palettes) ToJSON(buckets int, s Settings, mode DisplayMode) ([]byte, error) {
	return json.MarshalIndent(NewPaletteJSON(p, buckets, s, mode), "", "  ")
}
