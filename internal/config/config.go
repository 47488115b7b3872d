package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. It is parsed once at startup and passed
// explicitly into every component, so nothing reads the environment later.
type Config struct {
	Host              string `env:"HOST"                envDefault:"0.0.0.0"`
	Port              int    `env:"PORT"                envDefault:"8080"`
	OllamaURL         string `env:"OLLAMA_URL"          envDefault:"http://localhost:11434"`
	EnableImageSearch bool   `env:"ENABLE_IMAGE_SEARCH" envDefault:"false"`
	StaticDir         string `env:"STATIC_DIR"          envDefault:"./static"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
