package montecarlo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/MRamiBalles/MacroEconSim/server/internal/engine"
	"github.com/MRamiBalles/MacroEconSim/server/internal/events"
)

func TestRunIsDeterministicAcrossWorkers(t *testing.T) {
	base := Config{Replications: 6, Years: 30, BaseSeed: 1234}

	serial, err := Run(context.Background(), base)
	if err != nil {
		t.Fatalf("serial run: %v", err)
	}

	parallel := base
	parallel.Workers = 3
	concurrent, err := Run(context.Background(), parallel)
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}

	for i := range serial.Results {
		a, b := serial.Results[i], concurrent.Results[i]
		if a.Seed != b.Seed || a.Final != b.Final || a.EventsFired != b.EventsFired {
			t.Fatalf("replication %d differs between runs:\n%+v\n%+v", i, a, b)
		}
		if a.Final.Year != 30 {
			t.Fatalf("replication %d: expected year 30, got %d", i, a.Final.Year)
		}
	}
}

func TestRunResumesAfterEvents(t *testing.T) {
	catalog := []events.EventDefinition{{
		Name:        "Boom",
		Description: "Always",
		Probability: 1.0,
		Category:    events.CategoryPositive,
		Duration:    1,
	}}

	summary, err := Run(context.Background(), Config{Replications: 2, Years: 10, Catalog: catalog})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Year 0 never fires, so 9 of 10 ticks do.
	for _, r := range summary.Results {
		if r.EventsFired != 9 || r.EventCounts["Boom"] != 9 {
			t.Fatalf("expected 9 events, got %+v", r)
		}
	}
	if summary.EventCounts["Boom"] != 18 || summary.EventsFired.Mean != 9 {
		t.Fatalf("unexpected aggregate: %+v", summary.EventCounts)
	}
}

func TestRunAppliesSetup(t *testing.T) {
	summary, err := Run(context.Background(), Config{
		Replications: 1,
		Years:        5,
		Catalog:      []events.EventDefinition{},
		Setup:        func(e *engine.Engine) { e.SetTaxRate(40) },
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Results[0].TaxRate != 0.4 {
		t.Fatalf("expected tax rate 0.4, got %v", summary.Results[0].TaxRate)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	if _, err := Run(context.Background(), Config{Replications: 0, Years: 5}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Config{Replications: 3, Years: 5}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Final: engine.State{GDPPerCapita: 1}, EventsFired: 2, EventCounts: map[string]int{"A": 2}},
		{Final: engine.State{GDPPerCapita: 3}, EventsFired: 0, EventCounts: map[string]int{"B": 1}},
	}

	s := Summarize(results)
	if s.GDPPerCapita.Mean != 2 || s.GDPPerCapita.Min != 1 || s.GDPPerCapita.Max != 3 {
		t.Fatalf("unexpected gdp stat: %+v", s.GDPPerCapita)
	}
	if math.Abs(s.GDPPerCapita.StdDev-1) > 1e-12 {
		t.Fatalf("expected std dev 1, got %v", s.GDPPerCapita.StdDev)
	}
	names := EventNames(s.EventCounts)
	if len(names) != 2 || names[0] != "A" {
		t.Fatalf("expected A first, got %v", names)
	}
}
