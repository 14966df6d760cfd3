// Package config loads runtime settings from the environment and scenario
// files.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Config holds simulator settings.
type Config struct {
	LogLevel              string        `env:"MACROSIM_LOG_LEVEL"              envDefault:"info"`
	LogFormat             string        `env:"MACROSIM_LOG_FORMAT"             envDefault:"text"`
	Seed                  int64         `env:"MACROSIM_SEED"`
	TickInterval          time.Duration `env:"MACROSIM_TICK_INTERVAL"          envDefault:"500ms"`
	EquilibrationInterval time.Duration `env:"MACROSIM_EQUILIBRATION_INTERVAL" envDefault:"50ms"`
	Years                 int           `env:"MACROSIM_YEARS"                  envDefault:"50"`
	AutoResume            bool          `env:"MACROSIM_AUTO_RESUME"`
	EventPause            time.Duration `env:"MACROSIM_EVENT_PAUSE"            envDefault:"2s"`
	CatalogPath           string        `env:"MACROSIM_CATALOG_PATH"`
	ScenarioPath          string        `env:"MACROSIM_SCENARIO_PATH"`
	Replications          int           `env:"MACROSIM_REPLICATIONS"           envDefault:"100"`
	Profile               string        `env:"MACROSIM_PROFILE"                envDefault:"default"`
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text or json)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	fs.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "interval between simulated years")
	fs.DurationVar(&cfg.EquilibrationInterval, "equilibration-tick", cfg.EquilibrationInterval, "interval between warm-up batches")
	fs.IntVar(&cfg.Years, "years", cfg.Years, "years to simulate")
	fs.BoolVar(&cfg.AutoResume, "auto-resume", cfg.AutoResume, "resume automatically after an event")
	fs.DurationVar(&cfg.EventPause, "event-pause", cfg.EventPause, "how long to hold an event before auto-resume")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to a YAML event catalog")
	fs.StringVar(&cfg.ScenarioPath, "scenario", cfg.ScenarioPath, "path to a YAML scenario")
	fs.IntVar(&cfg.Replications, "replications", cfg.Replications, "Monte-Carlo replications")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "worker profile (default, stress, low)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no run can use.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.EquilibrationInterval <= 0 {
		return fmt.Errorf("equilibration interval must be positive, got %s", c.EquilibrationInterval)
	}
	if c.Years < 1 {
		return fmt.Errorf("years must be positive, got %d", c.Years)
	}
	if c.Replications < 1 {
		return fmt.Errorf("replications must be positive, got %d", c.Replications)
	}
	if c.EventPause < 0 {
		return fmt.Errorf("event pause must not be negative, got %s", c.EventPause)
	}
	return nil
}
