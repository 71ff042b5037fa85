package loggers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

const logMaxAgeDays = 14

// New creates a new zerolog logger based on the provided log level string.
// Diagnostics go to stderr: stdout is reserved for the live report stream.
// Returns an error if the log level string cannot be parsed.
func New(level string) (Logger, error) {
	return newWithWriter(level, os.Stderr)
}

// NewRotatingFile creates a logger writing to path with size-based rotation,
// so long-running monitors do not grow a single unbounded log file.
func NewRotatingFile(level, path string, maxSizeMB, maxBackups int) (Logger, error) {
	return newWithWriter(level, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     logMaxAgeDays,
	})
}

func newWithWriter(level string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	// Create logger with JSON output, timestamp, and specified level
	logger := zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// Ctx extracts a logger from the context.
// Returns a no-op logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
