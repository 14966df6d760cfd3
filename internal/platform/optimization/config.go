// Package optimization provides concurrency tuning for batch runs.
package optimization

import (
	"fmt"
	"runtime"
)

// Config holds tuned parameters for Monte-Carlo batches.
type Config struct {
	// Worker pool
	Workers int

	// Channel buffer for queued replications
	JobBuffer int
}

// DefaultConfig returns sensible defaults: one worker per CPU.
func DefaultConfig() *Config {
	numCPU := runtime.NumCPU()

	return &Config{
		Workers:   numCPU,
		JobBuffer: numCPU * 2,
	}
}

// StressTestConfig returns aggressive settings for large batches.
func StressTestConfig() *Config {
	numCPU := runtime.NumCPU()

	return &Config{
		Workers:   numCPU * 2,
		JobBuffer: numCPU * 8,
	}
}

// LowResourceConfig returns minimal settings for development.
func LowResourceConfig() *Config {
	return &Config{
		Workers:   1,
		JobBuffer: 0,
	}
}

// ForProfile returns the preset named by profile.
func ForProfile(profile string) (*Config, error) {
	switch profile {
	case "", "default":
		return DefaultConfig(), nil
	case "stress":
		return StressTestConfig(), nil
	case "low":
		return LowResourceConfig(), nil
	}
	return nil, fmt.Errorf("unknown profile %q", profile)
}

// Recommendations provides suggestions based on observed metrics.
type Recommendations struct {
	IncreaseWorkers bool
	Notes           []string
}

// Analyze examines a metrics snapshot and returns recommendations.
func Analyze(metrics map[string]interface{}) *Recommendations {
	rec := &Recommendations{
		Notes: make([]string, 0),
	}

	// Check tick latency
	if tick, ok := metrics["tick"].(map[string]interface{}); ok {
		if maxLat, ok := tick["max_latency_ms"].(float64); ok && maxLat > 100 {
			rec.IncreaseWorkers = true
			rec.Notes = append(rec.Notes, "Tick latency exceeds 100ms - increase workers")
		}
	}

	// Check warm-up convergence
	if eq, ok := metrics["equilibration"].(map[string]interface{}); ok {
		runs, _ := eq["runs"].(int64)
		converged, _ := eq["converged"].(int64)
		if runs > 0 && converged < runs {
			rec.Notes = append(rec.Notes, fmt.Sprintf("%d of %d equilibrations hit the step cap", runs-converged, runs))
		}
	}

	return rec
}

// ApplyRecommendations modifies config based on recommendations.
func ApplyRecommendations(config *Config, rec *Recommendations) *Config {
	if rec.IncreaseWorkers {
		config.Workers *= 2
		config.JobBuffer *= 2
	}
	return config
}
