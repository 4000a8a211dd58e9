package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/palettegen/internal/colour"
	"github.com/jmylchreest/palettegen/internal/config"
)

// swatchWidth is the width of a preview block in terminal cells.
const swatchWidth = 8

// renderResult formats a generation result. JSON output always carries both
// palettes; text output honours which.
func renderResult(res colour.Result, format, which string, preview bool) (string, error) {
	if format == config.FormatJSON {
		data, err := res.Palettes.ToJSON(res.Buckets, res.Settings, colour.DisplayHex)
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	}

	mode, err := colour.ParseDisplayMode(format)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	switch which {
	case palettePrimary:
		writePalette(&b, res.Palettes.Primary, mode, preview, "")
	case paletteComplementary:
		writePalette(&b, res.Palettes.Complementary, mode, preview, "")
	default:
		b.WriteString("primary:\n")
		writePalette(&b, res.Palettes.Primary, mode, preview, "  ")
		b.WriteString("complementary:\n")
		writePalette(&b, res.Palettes.Complementary, mode, preview, "  ")
	}
	return b.String(), nil
}

func writePalette(b *strings.Builder, p colour.Palette, mode colour.DisplayMode, preview bool, indent string) {
	for _, c := range p {
		b.WriteString(indent)
		if preview {
			b.WriteString(colour.FormatSwatch(c, mode, swatchWidth))
		} else {
			b.WriteString(colour.Format(c, mode))
		}
		b.WriteString("\n")
	}
}

// renderBuckets lists the bucket histogram, most populated first.
func renderBuckets(buckets colour.BucketList, limit int) string {
	total := buckets.TotalCount()
	table := NewTable("#", "bucket", "pixels", "share", "mean")
	table.AlignRight(0, 2, 3)

	for i, bk := range buckets {
		if limit > 0 && i >= limit {
			break
		}
		share := 0.0
		if total > 0 {
			share = float64(bk.Stat.Count) / float64(total) * 100
		}
		r, g, bl := bk.Stat.Mean()
		table.AddRow(
			strconv.Itoa(i+1),
			bk.Key.String(),
			strconv.Itoa(bk.Stat.Count),
			fmt.Sprintf("%.1f%%", share),
			colour.ToHex(r, g, bl),
		)
	}

	return table.Render()
}
