package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the OBBY_* environment overrides read at startup
type Env struct {
	PlayerName string `env:"OBBY_PLAYER_NAME"`
	Difficulty string `env:"OBBY_DIFFICULTY" envDefault:"normal"`
	ConfigDir  string `env:"OBBY_CONFIG_DIR"`
	RecordPath string `env:"OBBY_RECORD"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
