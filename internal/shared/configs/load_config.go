package configs

import (
	"fmt"
	"strings"

	"logpulse/internal/shared/validators"

	"github.com/spf13/viper"
)

// LoadConfig reads configuration from file and validates it.
// The window hysteresis thresholds have no defaults and must be present.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// setDefaults fills in every optional key. window.high_threshold and
// window.low_threshold are deliberately absent.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("monitor.port", 9600)
	v.SetDefault("monitor.read_header_timeout", 5)
	v.SetDefault("monitor.read_timeout", 10)
	v.SetDefault("monitor.write_timeout", 10)
	v.SetDefault("monitor.idle_timeout", 60)

	v.SetDefault("pipeline.queue_capacity", 1024)

	v.SetDefault("window.initial_duration", "15s")
	v.SetDefault("window.history_length", 8)
	v.SetDefault("window.max_duration", "0s")
	v.SetDefault("window.smoothing_factor", 0.5)

	v.SetDefault("report.interval", "1s")
	v.SetDefault("report.top_messages", 3)
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "window.high_threshold")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Window.HighThreshold" -> "window.highthreshold")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "gt":
		msg = fmt.Sprintf("%s (gt=%s)", field, e.Param())
	case "lte":
		msg = fmt.Sprintf("%s (lte=%s)", field, e.Param())
	case "ltfield":
		msg = fmt.Sprintf("%s (must be less than %s)", field, strings.ToLower(e.Param()))
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
