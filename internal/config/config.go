// Package config holds server configuration read from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config is the server configuration. Every field has an environment
// override with a usable default.
type Config struct {
	// Port the API server listens on.
	Port int `env:"PORT" envDefault:"8080"`
	// StaticDir optionally serves a frontend build.
	StaticDir string `env:"STATIC_DIR"`
	// TaxonomyFile optionally overrides the built-in category taxonomy
	// with a YAML file (categories: name + keywords).
	TaxonomyFile string `env:"TAXONOMY_FILE"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// MaxUploadMB bounds statement uploads.
	MaxUploadMB int `env:"MAX_UPLOAD_MB" envDefault:"32"`
}

// Read parses the configuration from the environment.
func Read() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	return cfg, nil
}
