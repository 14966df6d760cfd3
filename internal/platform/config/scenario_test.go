package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/MRamiBalles/MacroEconSim/server/internal/domain/economy"
)

type policyRecorder struct {
	savings, interest, spending, tax float64
	calls                            int
}

func (p *policyRecorder) SetSavingsRate(v float64)        { p.savings = v; p.calls++ }
func (p *policyRecorder) SetInterestRate(v float64)       { p.interest = v; p.calls++ }
func (p *policyRecorder) SetGovernmentSpending(v float64) { p.spending = v; p.calls++ }
func (p *policyRecorder) SetTaxRate(v float64)            { p.tax = v; p.calls++ }

func TestLoadScenario(t *testing.T) {
	doc := `
name: high-savings
growth:
  s: 0.35
  k0: 250
policy:
  interest_rate: 4
  tax_rate: 30
`
	s, err := LoadScenario(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadScenario returned error: %v", err)
	}

	params, err := s.GrowthParameters()
	if err != nil {
		t.Fatalf("GrowthParameters returned error: %v", err)
	}
	def := economy.DefaultGrowthParameters()
	if params.S != 0.35 || params.K0 != 250 || params.Alpha != def.Alpha || params.L0 != def.L0 {
		t.Fatalf("unexpected parameters: %+v", params)
	}

	rec := &policyRecorder{}
	s.ApplyPolicy(rec)
	if rec.calls != 2 || rec.interest != 4 || rec.tax != 30 {
		t.Fatalf("expected only interest and tax to be set, got %+v", rec)
	}
}

func TestLoadScenarioEmptyIsDefault(t *testing.T) {
	s, err := LoadScenario(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadScenario returned error: %v", err)
	}
	params, _ := s.GrowthParameters()
	if params != economy.DefaultGrowthParameters() {
		t.Fatalf("expected defaults, got %+v", params)
	}
}

func TestLoadScenarioRejectsDegenerateLabor(t *testing.T) {
	_, err := LoadScenario(strings.NewReader("growth:\n  l0: 0\n"))
	if !errors.Is(err, economy.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

func TestLoadScenarioRejectsUnknownField(t *testing.T) {
	if _, err := LoadScenario(strings.NewReader("growth:\n  sigma: 2\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadScenarioFileEmptyPath(t *testing.T) {
	s, err := LoadScenarioFile("")
	if err != nil || s.Name != "default" {
		t.Fatalf("expected default scenario, got %+v err=%v", s, err)
	}
	if _, err := LoadScenarioFile("/nonexistent/scenario.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
