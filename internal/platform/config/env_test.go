package config

import (
	"flag"
	"io"
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int `env:"MACROSIM_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("MACROSIM_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.TickInterval != 500*time.Millisecond || cfg.EquilibrationInterval != 50*time.Millisecond {
		t.Fatalf("unexpected intervals: %s %s", cfg.TickInterval, cfg.EquilibrationInterval)
	}
	if cfg.Years != 50 || cfg.Seed != 0 || cfg.AutoResume || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("MACROSIM_SEED", "42")
	t.Setenv("MACROSIM_YEARS", "10")
	t.Setenv("MACROSIM_AUTO_RESUME", "true")

	cfg, err := ParseConfig(newFlagSet(), []string{"-years", "20", "-tick", "1s"})
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Seed != 42 || !cfg.AutoResume {
		t.Fatalf("expected env values, got %+v", cfg)
	}
	if cfg.Years != 20 || cfg.TickInterval != time.Second {
		t.Fatalf("expected flags to override env, got %+v", cfg)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	t.Setenv("MACROSIM_YEARS", "0")
	if _, err := ParseConfig(newFlagSet(), nil); err == nil {
		t.Fatal("expected error for zero years")
	}
}
