package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palettegen/internal/colour"
	"github.com/jmylchreest/palettegen/internal/image"
)

// extractOptions holds the extract command flags.
type extractOptions struct {
	paletteFlags
	output   string
	buckets  int
	noCache  bool
	cacheDir string
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract primary and complementary palettes from an image",
		Long: `Extract a primary and a complementary colour palette from an image.

The image is reduced to at most 600 pixels on its longer side, every pixel is
grouped into a coarse colour bucket, and the most populated buckets are
averaged into palette colours. The complementary palette rotates each colour
half way around the hue wheel.

Supported image formats: JPEG, PNG, GIF, WebP, AVIF, optionally compressed with
xz, gzip or bzip2. HTTP(S) URLs are fetched directly.

Examples:
  # Extract 10 colours (default) from an image
  palettegen extract wallpaper.jpg

  # Extract 6 harmonised colours with swatches
  palettegen extract --muller --preview -c 6 wallpaper.png

  # Only the primary palette, as hsl()
  palettegen extract --palette primary -f hsl wallpaper.webp

  # Rotate all hues by a quarter turn and save JSON
  palettegen extract --hue 25 -f json -o palette.json wallpaper.jpg.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, opts, args[0])
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.buckets, "buckets", 0, "also print the N most populated buckets to stderr (-1 for all)")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache downloaded images in this directory (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "never cache downloaded images")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, g *globalOptions, opts *extractOptions, imagePath string) error {
	log := g.logger(cmd)

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	settings, format := opts.resolve(cmd.Flags(), cfg)

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	loader := image.NewSmartLoader()
	loader.CacheDir = cfg.CacheDir
	if cmd.Flags().Changed("cache-dir") {
		loader.CacheDir = opts.cacheDir
	}
	if opts.noCache {
		loader.CacheDir = ""
	}

	log.Debug("loading image", "path", imagePath)
	img, err := loader.LoadContext(commandContext(cmd), imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	pixels := image.Pixels(img)
	log.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy(), "sampled", len(pixels))

	session := colour.NewSession()
	session.SetPixels(pixels)
	res := session.Update(settings)

	log.Debug("generated palettes",
		"buckets", res.Buckets,
		"colours", len(res.Palettes.Primary),
		"high_variety", res.Settings.HighVariety,
		"muller", res.Settings.Muller,
		"hue_offset", res.Settings.HueOffset,
	)

	if opts.buckets != 0 {
		fmt.Fprint(cmd.ErrOrStderr(), renderBuckets(session.Buckets(), opts.buckets))
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		out = nil
	}
	preview := opts.preview && out != nil && colour.SupportsANSIColours(out)
	if opts.preview && !preview {
		log.Debug("preview disabled: output is not a colour terminal")
	}

	output, err := renderResult(res, format, opts.palette.String(), preview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(output), 0o644); err != nil { // #nosec G306 - Palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info("wrote palette", "path", opts.output)
		return nil
	}

	_, err = io.WriteString(out, output)
	return err
}

// commandContext returns the command's context, or Background when run
// without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
