package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MRamiBalles/MacroEconSim/server/internal/domain/economy"
)

// Policy holds initial policy levers in percent. Nil fields keep defaults.
type Policy struct {
	SavingsRate        *float64 `yaml:"savings_rate,omitempty"`
	InterestRate       *float64 `yaml:"interest_rate,omitempty"`
	GovernmentSpending *float64 `yaml:"government_spending,omitempty"`
	TaxRate            *float64 `yaml:"tax_rate,omitempty"`
}

// PolicySetter is implemented by the engine.
type PolicySetter interface {
	SetSavingsRate(percent float64)
	SetInterestRate(percent float64)
	SetGovernmentSpending(percent float64)
	SetTaxRate(percent float64)
}

// Scenario is a named starting point for a run:
//
//	name: high-savings
//	growth:
//	  s: 0.35
//	  k0: 250
//	policy:
//	  interest_rate: 4
//	  tax_rate: 30
type Scenario struct {
	Name   string                  `yaml:"name"`
	Growth economy.GrowthOverrides `yaml:"growth"`
	Policy Policy                  `yaml:"policy"`
}

// LoadScenario decodes a YAML scenario. An empty document is the default
// scenario.
func LoadScenario(r io.Reader) (Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if _, err := s.GrowthParameters(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// LoadScenarioFile reads a scenario from disk. An empty path yields the
// default scenario.
func LoadScenarioFile(path string) (Scenario, error) {
	if path == "" {
		return Scenario{Name: "default"}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	return LoadScenario(f)
}

// GrowthParameters applies the overrides to the defaults and validates them.
func (s Scenario) GrowthParameters() (economy.GrowthParameters, error) {
	params := s.Growth.Apply(economy.DefaultGrowthParameters())
	if err := params.Validate(); err != nil {
		return economy.GrowthParameters{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return params, nil
}

// ApplyPolicy sets every lever the scenario names.
func (s Scenario) ApplyPolicy(target PolicySetter) {
	p := s.Policy
	if p.SavingsRate != nil {
		target.SetSavingsRate(*p.SavingsRate)
	}
	if p.InterestRate != nil {
		target.SetInterestRate(*p.InterestRate)
	}
	if p.GovernmentSpending != nil {
		target.SetGovernmentSpending(*p.GovernmentSpending)
	}
	if p.TaxRate != nil {
		target.SetTaxRate(*p.TaxRate)
	}
}
