package configs

import "time"

// Config holds all configuration for the application.
type Config struct {
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Monitor  MonitorConfig  `mapstructure:"monitor" validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Window   WindowConfig   `mapstructure:"window" validate:"required"`
	Report   ReportConfig   `mapstructure:"report" validate:"required"`
}

// LogConfig holds logging configuration. File is optional; when empty,
// diagnostics go to stderr only (stdout carries the live report).
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"required"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
}

// MonitorConfig holds the ops HTTP server configuration.
type MonitorConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// PipelineConfig holds ingestion queue configuration.
type PipelineConfig struct {
	QueueCapacity int `mapstructure:"queue_capacity" validate:"required,min=1"`
}

// WindowConfig holds the adaptive window configuration. HighThreshold and
// LowThreshold carry no defaults: sensible hysteresis bounds depend entirely
// on the deployment's traffic shape, so the operator must state them.
type WindowConfig struct {
	InitialDuration time.Duration `mapstructure:"initial_duration" validate:"required,min=15s"`
	HighThreshold   float64       `mapstructure:"high_threshold" validate:"required,gt=0"`
	LowThreshold    float64       `mapstructure:"low_threshold" validate:"required,gt=0,ltfield=HighThreshold"`
	HistoryLength   int           `mapstructure:"history_length" validate:"required,min=1"`
	MaxDuration     time.Duration `mapstructure:"max_duration" validate:"min=0s"` // 0 = unbounded growth
	SmoothingFactor float64       `mapstructure:"smoothing_factor" validate:"required,gt=0,lte=1"`
}

// ReportConfig holds terminal report and snapshot export configuration.
// ExportPath is optional; when set, each report tick also writes the latest
// snapshot to that path as JSON.
type ReportConfig struct {
	Interval    time.Duration `mapstructure:"interval" validate:"required,min=100ms"`
	TopMessages int           `mapstructure:"top_messages" validate:"min=0"`
	ExportPath  string        `mapstructure:"export_path"`
}
