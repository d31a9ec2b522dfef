package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds platform settings read from the environment. CLI flags take
// these as their defaults.
type Env struct {
	ConfigPath  string `env:"ORBFALL_CONFIG"`
	DBPath      string `env:"ORBFALL_DB" envDefault:"~/.orbfall/scores.db"`
	FPS         int    `env:"ORBFALL_FPS" envDefault:"30"`
	Seed        int64  `env:"ORBFALL_SEED" envDefault:"0"`
	Difficulty  string `env:"ORBFALL_DIFFICULTY"`
	LogLevel    string `env:"ORBFALL_LOG_LEVEL" envDefault:"info"`
	SSHAddr     string `env:"ORBFALL_SSH_ADDR" envDefault:":23234"`
	HostKeyPath string `env:"ORBFALL_HOST_KEY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return e, err
	}
	return e, nil
}
