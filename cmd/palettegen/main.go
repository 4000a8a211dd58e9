// palettegen - primary and complementary colour palettes from images
//
// palettegen groups an image's pixels into coarse colour buckets and turns
// the most populated ones into a palette, optionally rotated around the hue
// wheel or harmonised towards a fixed set of hues.
package main

import "github.com/jmylchreest/palettegen/internal/cli"

func main() {
	cli.Execute()
}
