// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"setgame/internal/engine"
)

// Config holds process-wide settings.
type Config struct {
	Port        int    `env:"SET_PORT" envDefault:"8080"`
	PublicURL   string `env:"SET_PUBLIC_URL"` // base for join links; empty uses the request host
	QRSize      int    `env:"SET_QR_SIZE" envDefault:"256"`
	TableauSize int    `env:"SET_TABLEAU_SIZE" envDefault:"12"`
	Seed        uint64 `env:"SET_SEED"`
	MaxViewers  int    `env:"SET_MAX_VIEWERS" envDefault:"8"`
}

// Load reads Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that may have been overridden after Load.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// GameConfig returns the engine rules for new sessions.
func (c Config) GameConfig() engine.GameConfig {
	gc := engine.DefaultConfig()
	if c.TableauSize > 0 {
		gc.TableauSize = c.TableauSize
	}
	gc.Seed = c.Seed
	return gc
}
