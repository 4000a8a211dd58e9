package cli

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palettegen/internal/colour"
	"github.com/jmylchreest/palettegen/internal/config"
	"github.com/jmylchreest/palettegen/internal/image"
	"github.com/jmylchreest/palettegen/internal/watch"
)

type watchOptions struct {
	paletteFlags
	debounce time.Duration
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <image>",
		Short: "Regenerate palettes whenever an image file changes",
		Long: `Print the palettes for an image, then print them again every time the file
is written or replaced. Stop with Ctrl-C.

Examples:
  palettegen watch --preview ~/wallpaper.png
  palettegen watch -f json --debounce 1s current.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, g, opts, args[0])
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "quiet period after a change before reloading")

	return cmd
}

func runWatch(cmd *cobra.Command, g *globalOptions, opts *watchOptions, imagePath string) error {
	log := g.logger(cmd)

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	settings, format := opts.resolve(cmd.Flags(), cfg)

	debounce := cfg.DebounceDuration()
	if cmd.Flags().Changed("debounce") {
		debounce = opts.debounce
	}

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	w, err := watch.New(watch.Options{
		Path:     imagePath,
		Settings: settings,
		Debounce: debounce,
		Log:      log.Named("watch"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	preview := opts.preview && colour.SupportsANSIColours(out)

	var writeErr error
	err = w.Run(ctx, func(res colour.Result) {
		text, err := renderResult(res, format, opts.palette.String(), preview)
		if err != nil {
			writeErr = err
			stop()
			return
		}
		if format != config.FormatJSON {
			text = fmt.Sprintf("# %s (generation %d)\n%s", w.Path(), res.Generation, text)
		}
		if _, err := io.WriteString(out, text); err != nil {
			writeErr = err
			stop()
		}
	})
	if err != nil {
		return err
	}
	return writeErr
}
