package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"logpulse/internal/app"
	"logpulse/internal/shared/configs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "logpulse",
		Short: "logpulse tails a log stream on stdin and reports adaptive throughput stats",
		Long: `logpulse reads log lines from stdin, aggregates them into adaptively
sized time windows, and renders a live stats report to stdout. Diagnostics go
to stderr or a rotating file; an ops HTTP server exposes /metrics, /healthz
and /snapshot.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "./configs/configs.yml", "path to the YAML config file")
	return cmd
}

func run(configPath string) error {
	cfg, err := configs.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(cfg, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	// The pipeline finishes on its own when stdin reaches EOF; a signal ends
	// it early.
	pipelineDone := make(chan error, 1)
	go func() {
		pipelineDone <- application.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-pipelineDone:
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		return fmt.Errorf("monitor forced to shutdown: %w", err)
	}
	return runErr
}
