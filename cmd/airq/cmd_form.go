package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/tui"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Fill in the measurements in an interactive terminal form",
	Args:  cobra.NoArgs,
	RunE:  runForm,
}

func runForm(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	p, err := newPipeline(cfg, eng, collector.KindText)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.New(p, p.Renderer().Printer()))
}
