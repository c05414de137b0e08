// Package config loads the firmware simulator configuration from
// GLINETSIM_ environment variables layered over built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Scenario ScenarioConfig `envPrefix:"SCENARIO_"`
	Logging  LoggingConfig  `envPrefix:"LOG_"`
}

type ServerConfig struct {
	Addr         string        `env:"ADDR" validate:"required,hostname_port"`
	MetricsPath  string        `env:"METRICS_PATH" validate:"required,startswith=/"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" validate:"min=1s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" validate:"min=1s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" validate:"min=1s"`
}

type ScenarioConfig struct {
	// Path points at an optional TOML overlay; empty runs the built-in
	// scenario.
	Path   string `env:"PATH"`
	Jitter bool   `env:"JITTER"`
	Seed   int64  `env:"SEED"`
}

type LoggingConfig struct {
	Level string `env:"LEVEL" validate:"oneof=debug info warn warning error"`
}

var (
	defaultConfig = Config{
		Server: ServerConfig{
			Addr:         ":8080",
			MetricsPath:  "/metrics",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Scenario: ScenarioConfig{
			Jitter: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
	validate = validator.New()
)

// Load merges GLINETSIM_ environment variables over the defaults and
// validates the result.
func Load() (*Config, error) {
	cfg := defaultConfig

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GLINETSIM_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
