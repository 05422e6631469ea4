package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/config"
	"github.com/crimson-sun/airq/internal/presentation"
	"github.com/crimson-sun/airq/internal/web"
)

var serveFlags struct {
	addr  string
	input string
	image string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction form and JSON API over HTTP",
	Long: `Starts the web form. Each submission is evaluated independently;
there is no per-user state. SIGINT or SIGTERM shuts the server down
gracefully.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", "", "Listen address (overrides AIRQ_ADDR)")
	f.StringVar(&serveFlags.input, "input", "", "Input widgets: slider or text")
	f.StringVar(&serveFlags.image, "image", "", "Decorative image shown on the page")
}

func serveOverrides(cfg *config.Config) {
	override(&cfg.Server.Addr, serveFlags.addr)
	override(&cfg.Form.Input, serveFlags.input)
	override(&cfg.Server.ImagePath, serveFlags.image)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveOverrides)
	if err != nil {
		return err
	}

	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	c, err := collector.New(collector.Kind(cfg.Form.Input), eng.Registry())
	if err != nil {
		return err
	}

	srv := web.New(web.Options{
		Collector: c,
		Predictor: eng,
		Table:     presentation.DefaultTable(),
		Language:  cfg.Form.Language,
		ImagePath: cfg.Server.ImagePath,
		Authors:   cfg.Server.Authors,
		Footer:    cfg.Server.Footer,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("airq serving", "addr", cfg.Server.Addr, "input", cfg.Form.Input, "version", version)
	if err := web.ListenAndServe(ctx, cfg.Server.Addr, srv.Handler()); err != nil {
		return err
	}
	slog.Info("airq stopped")
	return nil
}
