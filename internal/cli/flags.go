package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/palettegen/internal/colour"
	"github.com/jmylchreest/palettegen/internal/config"
)

// enumValue is a pflag.Value restricted to a fixed set of lower-case words.
type enumValue struct {
	value   string
	allowed []string
}

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(e.allowed, s) {
		return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
	}
	e.value = s
	return nil
}

func (e *enumValue) Type() string { return "string" }

// Which palettes to print.
const (
	paletteBoth          = "both"
	palettePrimary       = "primary"
	paletteComplementary = "complementary"
)

// paletteFlags are the generation flags shared by extract and watch.
type paletteFlags struct {
	colours     int
	highVariety bool
	muller      bool
	hue         int
	format      *enumValue
	palette     *enumValue
	preview     bool
}

func (p *paletteFlags) register(fs *pflag.FlagSet) {
	formats := []string{config.FormatJSON}
	for _, m := range colour.DisplayModes() {
		formats = append(formats, string(m))
	}
	slices.Sort(formats)

	p.format = newEnumValue(string(colour.DisplayHex), formats...)
	p.palette = newEnumValue(paletteBoth, paletteBoth, palettePrimary, paletteComplementary)

	fs.IntVarP(&p.colours, "colours", "c", colour.DefaultColours,
		fmt.Sprintf("number of colours per palette (%d-%d)", colour.MinColours, colour.MaxColours))
	fs.BoolVar(&p.highVariety, "high-variety", false, "group pixels into coarser buckets for more varied colours")
	fs.BoolVar(&p.muller, "muller", false, "nudge hues towards a fixed set of harmonious hues")
	fs.IntVar(&p.hue, "hue", 0, fmt.Sprintf("rotate every hue by this slider position (0-%d)", colour.HueSliderMax))
	fs.VarP(p.format, "format", "f", "output format ("+strings.Join(formats, ", ")+")")
	fs.Var(p.palette, "palette", "palettes to print (both, primary, complementary)")
	fs.BoolVar(&p.preview, "preview", false, "show colour swatches when writing to a terminal")
}

// resolve merges the config file and any explicitly set flags. A flag
// overrides the config only when given on the command line.
func (p *paletteFlags) resolve(fs *pflag.FlagSet, cfg config.Config) (colour.Settings, string) {
	settings := cfg.Settings()
	format := cfg.Format
	if format == "" {
		format = p.format.String()
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "colours":
			settings.Count = p.colours
		case "high-variety":
			settings.HighVariety = p.highVariety
		case "muller":
			settings.Muller = p.muller
		case "hue":
			settings.HueOffset = colour.HueOffsetFromSlider(p.hue)
		case "format":
			format = p.format.String()
		}
	})

	return settings.Normalise(), strings.ToLower(format)
}
