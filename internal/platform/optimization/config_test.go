package optimization

import (
	"strings"
	"testing"
)

func TestForProfile(t *testing.T) {
	for _, name := range []string{"", "default", "stress", "low"} {
		cfg, err := ForProfile(name)
		if err != nil || cfg.Workers < 1 {
			t.Errorf("profile %q: got %+v, %v", name, cfg, err)
		}
	}
	if _, err := ForProfile("turbo"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestAnalyze(t *testing.T) {
	snapshot := map[string]interface{}{
		"tick": map[string]interface{}{"max_latency_ms": 150.0},
		"equilibration": map[string]interface{}{
			"runs":      int64(10),
			"converged": int64(4),
		},
	}

	rec := Analyze(snapshot)
	if !rec.IncreaseWorkers || len(rec.Notes) != 2 {
		t.Fatalf("unexpected recommendations: %+v", rec)
	}
	if !strings.Contains(rec.Notes[1], "6 of 10") {
		t.Fatalf("expected step-cap note, got %q", rec.Notes[1])
	}

	cfg := ApplyRecommendations(&Config{Workers: 2, JobBuffer: 4}, rec)
	if cfg.Workers != 4 || cfg.JobBuffer != 8 {
		t.Fatalf("expected doubled pool, got %+v", cfg)
	}
}

func TestAnalyzeQuietMetrics(t *testing.T) {
	rec := Analyze(map[string]interface{}{})
	if rec.IncreaseWorkers || len(rec.Notes) != 0 {
		t.Fatalf("expected no recommendations, got %+v", rec)
	}
}
