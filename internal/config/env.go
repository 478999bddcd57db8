package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Env holds runtime settings read from the environment. They become the
// defaults of the matching CLI flags.
type Env struct {
	DBPath     string `env:"SKIRMISH_DB_PATH"`
	FPS        int    `env:"SKIRMISH_FPS" envDefault:"30"`
	Seed       int64  `env:"SKIRMISH_SEED"`
	ConfigPath string `env:"SKIRMISH_CONFIG"`
	LogFile    string `env:"SKIRMISH_LOG_FILE"`
	SSHAddr    string `env:"SKIRMISH_SSH_ADDR" envDefault:"0.0.0.0:2323"`
	Difficulty string `env:"SKIRMISH_DIFFICULTY" envDefault:"normal"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env and fills in the database path under DataDir.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if e.DBPath == "" {
		e.DBPath = filepath.Join(DataDir(), "battles.db")
	}
	return e, nil
}
