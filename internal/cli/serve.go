package cli

import (
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/palettegen/internal/colour"
	"github.com/jmylchreest/palettegen/internal/logging"
	"github.com/jmylchreest/palettegen/internal/server"
)

type serveOptions struct {
	host        string
	port        int
	maxUploadMB int64
	jsonLogs    bool
}

func newServeCmd(g *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the palette HTTP API",
		Long: `Start an HTTP server that generates palettes from uploaded images.

Endpoints:
  POST /api/v1/palettes   multipart field "image"; query colours, highVariety,
                          muller, hue (0-100) and format (hex, rgb, hsl)
  GET  /healthz           liveness check
  GET  /metrics           Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "127.0.0.1", "address to listen on")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 8080, "port to listen on (0 picks a free port)")
	cmd.Flags().Int64Var(&opts.maxUploadMB, "max-upload-mb", 20, "largest accepted upload in MiB")
	cmd.Flags().BoolVar(&opts.jsonLogs, "json-logs", false, "write logs as JSON lines")

	return cmd
}

func runServe(cmd *cobra.Command, g *globalOptions, opts *serveOptions) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	sc := cfg.Server
	flags := cmd.Flags()
	if flags.Changed("host") {
		sc.Host = opts.host
	}
	if flags.Changed("port") {
		sc.Port = opts.port
	}
	if flags.Changed("max-upload-mb") {
		sc.MaxUploadMB = opts.maxUploadMB
	}

	log := g.logger(cmd)
	if opts.jsonLogs {
		level := hclog.Info
		switch {
		case g.quiet:
			level = hclog.Error
		case g.verbose:
			level = hclog.Debug
		}
		log = logging.NewJSON("palettegen", level, cmd.ErrOrStderr())
	}

	display, err := colour.ParseDisplayMode(cfg.Format)
	if err != nil {
		display = colour.DisplayHex
	}

	srv := server.New(server.Config{
		Host:           sc.Host,
		Port:           sc.Port,
		MaxUploadBytes: sc.MaxUploadBytes(),
		Defaults:       cfg.Settings(),
		Display:        display,
	}, log.Named("server"))

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}
