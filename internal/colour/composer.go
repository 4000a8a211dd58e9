package colour

const (
	// VariantPrimary is the hue rotation applied to the primary palette.
	VariantPrimary = 0.0

	// VariantComplementary rotates every colour half way round the wheel.
	VariantComplementary = 0.5
)

// ComposeOptions controls a single palette composition.
type ComposeOptions struct {
	// Count is the number of colours requested. Callers clamp it with ClampCount.
	Count int

	// Muller enables hue harmonisation toward the Muller anchors.
	Muller bool

	// HueOffset is the global hue rotation as a fraction of a turn.
	HueOffset float64

	// VariantOffset distinguishes the primary and complementary palettes.
	VariantOffset float64
}

// ComposePalette reduces the leading buckets to their mean colours, rotates
// their hue and re-encodes them. Entry i of the result comes from buckets[i].
func ComposePalette(buckets BucketList, opts ComposeOptions) Palette {
	n := min(max(opts.Count, 0), len(buckets))
	palette := make(Palette, n)

	for i, b := range buckets[:n] {
		hsl := RGBToHSL(b.Stat.Mean())
		hsl.H = offsetHue(hsl.H, opts.VariantOffset, opts.HueOffset)
		if opts.Muller {
			hsl.H = Harmonize(hsl.H, hsl.L)
		}
		palette[i] = NewColorSample(HSLToRGB(hsl))
	}

	return palette
}

// Palettes holds the two palettes generated from one bucket list.
type Palettes struct {
	Primary       Palette `json:"primary"`
	Complementary Palette `json:"complementary"`
}

// ComposePalettes runs two independent compositions over the same buckets,
// one per variant offset.
func ComposePalettes(buckets BucketList, s Settings) Palettes {
	opts := ComposeOptions{
		Count:     s.Count,
		Muller:    s.Muller,
		HueOffset: s.HueOffset,
	}

	primary := opts
	primary.VariantOffset = VariantPrimary

	complementary := opts
	complementary.VariantOffset = VariantComplementary

	return Palettes{
		Primary:       ComposePalette(buckets, primary),
		Complementary: ComposePalette(buckets, complementary),
	}
}

// offsetHue adds the variant and global offsets to h and normalises into [0,1).
func offsetHue(h, variant, global float64) float64 {
	return wrapUnit(h + variant + global)
}
