package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"logpulse/internal/aggregators"
	"logpulse/internal/exporters"
	internalhttp "logpulse/internal/http"
	"logpulse/internal/interners"
	"logpulse/internal/models"
	"logpulse/internal/parsers"
	"logpulse/internal/reporters"
	"logpulse/internal/shared/configs"
	"logpulse/internal/shared/loggers"
	"logpulse/internal/shared/ulid"
	"logpulse/internal/snapshots"
	"logpulse/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	producer streams.RecordProducer
	consumer streams.WindowConsumer
	reporter reporters.StatsReporter

	// The producer gets its own cancellation: shutting down means "stop
	// feeding", while the consumer keeps draining on the background context.
	producerCtx      context.Context
	producerCancel   context.CancelFunc
	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance. Log lines are read from in;
// the live report is rendered to out.
func New(config *configs.Config, in io.Reader, out io.Writer) (*App, error) {
	appLogger, err := newAppLogger(config.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "logpulse").
		Str(loggers.FieldRunID, ulid.NewULID()).
		Logger()

	// State shared across the two pipeline tasks.
	interner := interners.NewMessageInterner()
	cell := snapshots.NewCell()
	queue := streams.NewBoundedQueue[models.Record](config.Pipeline.QueueCapacity)

	// Ingestion side.
	parser := parsers.NewLineParser(interner, componentLogger(appLogger, "parser"))
	producer := streams.NewRecordProducer(in, parser, queue, componentLogger(appLogger, "producer"))

	// Aggregation side.
	policy := aggregators.NewHysteresisPolicy(
		config.Window.HighThreshold,
		config.Window.LowThreshold,
		config.Window.MaxDuration,
	)
	aggregator := aggregators.NewWindowAggregator(
		aggregators.Settings{
			InitialDuration: config.Window.InitialDuration,
			HistoryLength:   config.Window.HistoryLength,
			SmoothingFactor: config.Window.SmoothingFactor,
			TopMessages:     config.Report.TopMessages,
		},
		interner,
		policy,
		cell,
		componentLogger(appLogger, "aggregator"),
	)
	consumer := streams.NewWindowConsumer(queue, aggregator, config.Report.Interval, componentLogger(appLogger, "consumer"))

	// Reporting side. The exporter is optional.
	var exporter exporters.SnapshotExporter
	if config.Report.ExportPath != "" {
		exporter, err = exporters.NewSnapshotExporter(config.Report.ExportPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize snapshot exporter: %w", err)
		}
	}
	reporter := reporters.NewStatsReporter(
		cell,
		exporter,
		out,
		config.Report.Interval,
		config.Report.TopMessages,
		componentLogger(appLogger, "reporter"),
	)

	// Ops HTTP surface.
	router := internalhttp.NewRouter(cell, componentLogger(appLogger, "http"))
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Monitor.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Monitor.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Monitor.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Monitor.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Monitor.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
		producer:  producer,
		consumer:  consumer,
		reporter:  reporter,
	}, nil
}

// Start runs the pipeline until the input stream ends or the producer is
// cancelled. It blocks on the producer and then on the consumer drain, so a
// clean EOF returns only after every accepted record is aggregated.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting logpulse monitor on port %d (log_level=%s, queue_capacity=%d, initial_window=%s)",
			app.config.Monitor.Port,
			app.config.Log.Level,
			app.config.Pipeline.QueueCapacity,
			app.config.Window.InitialDuration)

	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.producerCtx, app.producerCancel = context.WithCancel(context.Background())

	app.consumer.Start(app.backgroundCtx)
	app.reporter.Start(app.backgroundCtx)

	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.appLogger.Error().Err(err).Msg("ops http server failed")
		}
	}()

	err := app.producer.Run(app.producerCtx)

	// The producer closed the queue on its way out; wait for the consumer to
	// drain and finalize before reporting completion.
	<-app.consumer.Done()

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("input pipeline failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the application. Safe to call after Start
// has already returned on its own.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down monitor...")

	// 1) Stop feeding: the producer closes the queue on cancellation.
	if app.producerCancel != nil {
		app.producerCancel()
	}

	// 2) Wait for the consumer to drain what was accepted. Past the deadline
	// (e.g. the producer is wedged on a quiet stdin and the queue never
	// closed) force the worker out; the snapshot cell still holds the last
	// published state.
	select {
	case <-app.consumer.Done():
	case <-ctx.Done():
		app.appLogger.Warn().Msg("consumer drain deadline passed, forcing stop")
		app.consumer.Stop()
	}

	// 3) Final report, then the readers.
	app.reporter.Stop()

	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}

	app.appLogger.Info().Msg("Monitor stopped")
	return nil
}

func newAppLogger(cfg configs.LogConfig) (loggers.Logger, error) {
	if cfg.File != "" {
		return loggers.NewRotatingFile(cfg.Level, cfg.File, cfg.MaxSizeMB, cfg.MaxBackups)
	}
	return loggers.New(cfg.Level)
}

func componentLogger(base loggers.Logger, name string) loggers.Logger {
	return base.With().Str(loggers.FieldComponent, name).Logger()
}
