package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEventWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "json", Output: &buf})

	log.Event("EVENT_FIRED", "Recession", "year 5")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["event"] != "EVENT_FIRED" || line["actor"] != "Recession" || line["msg"] != "year 5" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})

	log.Info("hidden")
	log.Debug("hidden too")
	log.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "chatty", Output: &buf})

	log.Debug("debug-line")
	log.Info("info-line")

	if strings.Contains(buf.String(), "debug-line") || !strings.Contains(buf.String(), "info-line") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "json", Output: &buf}).WithFields(map[string]interface{}{"seed": 42})

	log.Info("started")
	if !strings.Contains(buf.String(), `"seed":42`) {
		t.Fatalf("expected seed field, got %q", buf.String())
	}
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "json", Output: &buf})

	log.Infof("loaded %d events from %s", 12, "catalog.yaml")
	if !strings.Contains(buf.String(), `"msg":"loaded 12 events from catalog.yaml"`) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
