// Package config loads process configuration from defaults, an optional
// config file, environment variables and command-line flags.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Log        LogConfig        `mapstructure:"log" validate:"required"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry" validate:"required"`
	Calculator CalculatorConfig `mapstructure:"calculator" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

// TelemetryConfig toggles the OTLP exporters.
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name" validate:"required"`
	Tracing     bool   `mapstructure:"tracing"`
	Metrics     bool   `mapstructure:"metrics"`
	Logs        bool   `mapstructure:"logs"`
}

// CalculatorConfig contains settings of the evaluation engine.
type CalculatorConfig struct {
	// TimestampLayout is the time.Format layout of history timestamps.
	TimestampLayout string `mapstructure:"timestamp_layout" validate:"required"`
}
