package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment variables that override config file values.
type Env struct {
	Appinfo  string `env:"SRCDSRM_APPINFO"`
	Platform string `env:"SRCDSRM_PLATFORM"`
	LogLevel string `env:"SRCDSRM_LOG_LEVEL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Overrides returns the non-empty variables keyed by config key.
func (e Env) Overrides() map[string]string {
	out := make(map[string]string, 3)
	if e.Appinfo != "" {
		out["appinfo"] = e.Appinfo
	}
	if e.Platform != "" {
		out["platform"] = e.Platform
	}
	if e.LogLevel != "" {
		out["log_level"] = e.LogLevel
	}
	return out
}

func envOverrides() map[string]string {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return nil
	}
	return e.Overrides()
}
