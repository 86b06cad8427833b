// Package config loads choicesctl settings from the environment.
package config

import (
	"fmt"

	"github.com/rezkam/choices/internal/env"
)

// CLIConfig holds all configuration for the choicesctl binary.
type CLIConfig struct {
	Database      DatabaseConfig
	Log           LogConfig
	Observability ObservabilityConfig

	// Locale selects the language labels and messages are rendered in.
	Locale string `env:"CHOICES_LOCALE" default:"en"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"CHOICES_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"choicesctl"`
}

// Load loads and validates the CLI configuration from the environment.
func Load() (*CLIConfig, error) {
	cfg := &CLIConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
