package main

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the jsonlogic CLI.
type Config struct {
	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Evaluation configuration
	MaxDepth int `env:"EVAL_MAX_DEPTH" envDefault:"10000"`
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid config: EVAL_MAX_DEPTH must be >= 0")
	}
	return cfg, nil
}
