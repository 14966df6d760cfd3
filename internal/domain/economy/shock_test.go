package economy

import (
	"errors"
	"testing"
)

func TestEveryShockKindIsRouted(t *testing.T) {
	for _, k := range ShockKinds() {
		if k.Target() == TargetNone {
			t.Errorf("shock kind %q has no routing target", k)
		}
	}
	if len(shockTargets) != len(ShockKinds()) {
		t.Fatalf("routing table has %d entries, expected %d", len(shockTargets), len(ShockKinds()))
	}
}

func TestShockRouting(t *testing.T) {
	growth := []ShockKind{ShockTechnology, ShockProductivity, ShockPopulation, ShockDepreciation, ShockCapitalDestruction}
	monetary := []ShockKind{ShockInflation, ShockUnemployment, ShockMoneySupply}

	for _, k := range growth {
		if k.Target() != TargetGrowth {
			t.Errorf("%q: expected growth target, got %s", k, k.Target())
		}
	}
	for _, k := range monetary {
		if k.Target() != TargetMonetary {
			t.Errorf("%q: expected monetary target, got %s", k, k.Target())
		}
	}
}

func TestParseShockKind(t *testing.T) {
	k, err := ParseShockKind("capital_destruction")
	if err != nil || k != ShockCapitalDestruction {
		t.Fatalf("expected capital_destruction, got %q, %v", k, err)
	}

	if _, err := ParseShockKind("capital_destrution"); !errors.Is(err, ErrUnknownShockKind) {
		t.Fatalf("expected ErrUnknownShockKind, got %v", err)
	}
}
