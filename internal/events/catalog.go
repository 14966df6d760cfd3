// Package events provides the random-event layer of the simulation: a fixed
// catalog of shocks, the set of currently active events, and the append-only
// log of every firing.
package events

import (
	"errors"
	"fmt"
	"math"

	"github.com/MRamiBalles/MacroEconSim/server/internal/domain/economy"
)

// ErrInvalidCatalog indicates a catalog entry failed validation.
var ErrInvalidCatalog = errors.New("invalid event catalog")

// Category classifies an event for presentation.
type Category string

const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryMixed    Category = "mixed"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPositive, CategoryNegative, CategoryMixed:
		return true
	}
	return false
}

// Effect is one signed shock an event applies every year it is active.
type Effect struct {
	Kind      economy.ShockKind `json:"kind" yaml:"kind"`
	Magnitude float64           `json:"magnitude" yaml:"magnitude"`
}

// EventDefinition is a static catalog entry.
type EventDefinition struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Probability float64  `json:"probability" yaml:"probability"` // independent draw per tick
	Effects     []Effect `json:"effects" yaml:"effects"`         // applied in order
	Category    Category `json:"category" yaml:"category"`
	Duration    int      `json:"duration" yaml:"duration"` // ticks
}

// Validate checks a single definition.
func (d EventDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: event name is empty", ErrInvalidCatalog)
	}
	if d.Probability < 0 || d.Probability > 1 {
		return fmt.Errorf("%w: %s: probability %v outside [0,1]", ErrInvalidCatalog, d.Name, d.Probability)
	}
	if d.Duration < 1 {
		return fmt.Errorf("%w: %s: duration must be positive, got %d", ErrInvalidCatalog, d.Name, d.Duration)
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %s: unknown category %q", ErrInvalidCatalog, d.Name, d.Category)
	}
	for _, eff := range d.Effects {
		if !eff.Kind.Valid() {
			return fmt.Errorf("%w: %s: %w: %q", ErrInvalidCatalog, d.Name, economy.ErrUnknownShockKind, eff.Kind)
		}
		if math.IsNaN(eff.Magnitude) || math.IsInf(eff.Magnitude, 0) {
			return fmt.Errorf("%w: %s: %s magnitude %v is not finite", ErrInvalidCatalog, d.Name, eff.Kind, eff.Magnitude)
		}
		if scalesLevel(eff.Kind) && eff.Magnitude <= -1 {
			return fmt.Errorf("%w: %s: %s magnitude %v would drive the level to zero", ErrInvalidCatalog, d.Name, eff.Kind, eff.Magnitude)
		}
	}
	return nil
}

// scalesLevel reports whether kind multiplies a level by 1+m.
func scalesLevel(kind economy.ShockKind) bool {
	switch kind {
	case economy.ShockTechnology, economy.ShockPopulation, economy.ShockMoneySupply:
		return true
	}
	return false
}

// ValidateCatalog checks every definition in order.
func ValidateCatalog(catalog []EventDefinition) error {
	for _, d := range catalog {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCatalog returns the built-in events in priority order. Earlier
// entries are rolled first each tick.
func DefaultCatalog() []EventDefinition {
	return []EventDefinition{
		{
			Name:        "Technology Boom",
			Description: "New innovations boost productivity across the economy",
			Probability: 0.05,
			Effects: []Effect{
				{economy.ShockTechnology, 0.1},
				{economy.ShockProductivity, 0.005},
			},
			Category: CategoryPositive,
			Duration: 1,
		},
		{
			Name:        "Financial Crisis",
			Description: "Banking sector collapse destroys capital and reduces investment",
			Probability: 0.03,
			Effects: []Effect{
				{economy.ShockCapitalDestruction, 0.15},
				{economy.ShockUnemployment, 0.03},
			},
			Category: CategoryNegative,
			Duration: 3,
		},
		{
			Name:        "Natural Disaster",
			Description: "Major earthquake destroys infrastructure and capital",
			Probability: 0.02,
			Effects: []Effect{
				{economy.ShockCapitalDestruction, 0.08},
				{economy.ShockPopulation, -0.02},
			},
			Category: CategoryNegative,
			Duration: 2,
		},
		{
			Name:        "Baby Boom",
			Description: "Population growth accelerates due to cultural changes",
			Probability: 0.04,
			Effects: []Effect{
				{economy.ShockPopulation, 0.05},
			},
			Category: CategoryMixed,
			Duration: 5,
		},
		{
			Name:        "Oil Crisis",
			Description: "Energy prices spike, reducing productivity and increasing inflation",
			Probability: 0.03,
			Effects: []Effect{
				{economy.ShockInflation, 0.04},
				{economy.ShockProductivity, -0.01},
			},
			Category: CategoryNegative,
			Duration: 2,
		},
		{
			Name:        "Trade War",
			Description: "International trade tensions reduce economic efficiency",
			Probability: 0.04,
			Effects: []Effect{
				{economy.ShockProductivity, -0.008},
				{economy.ShockInflation, 0.015},
			},
			Category: CategoryNegative,
			Duration: 4,
		},
		{
			Name:        "Medical Breakthrough",
			Description: "Healthcare advances increase life expectancy and productivity",
			Probability: 0.03,
			Effects: []Effect{
				{economy.ShockPopulation, 0.01},
				{economy.ShockTechnology, 0.05},
			},
			Category: CategoryPositive,
			Duration: 1,
		},
		{
			Name:        "Housing Bubble Burst",
			Description: "Real estate market collapse reduces wealth and consumption",
			Probability: 0.025,
			Effects: []Effect{
				{economy.ShockCapitalDestruction, 0.1},
				{economy.ShockUnemployment, 0.025},
			},
			Category: CategoryNegative,
			Duration: 3,
		},
		{
			Name:        "Immigration Wave",
			Description: "Large influx of workers changes labor market dynamics",
			Probability: 0.04,
			Effects: []Effect{
				{economy.ShockPopulation, 0.03},
				{economy.ShockUnemployment, 0.01},
			},
			Category: CategoryMixed,
			Duration: 2,
		},
		{
			Name:        "Recession",
			Description: "Economic downturn reduces output and increases unemployment",
			Probability: 0.08,
			Effects: []Effect{
				{economy.ShockCapitalDestruction, 0.05},
				{economy.ShockUnemployment, 0.02},
				{economy.ShockProductivity, -0.005},
			},
			Category: CategoryNegative,
			Duration: 2,
		},
		{
			Name:        "Tech Startup Boom",
			Description: "Venture capital floods into new technology companies",
			Probability: 0.06,
			Effects: []Effect{
				{economy.ShockTechnology, 0.08},
				{economy.ShockInflation, 0.01},
			},
			Category: CategoryPositive,
			Duration: 2,
		},
		{
			Name:        "Currency Crisis",
			Description: "Currency devaluation affects international trade",
			Probability: 0.02,
			Effects: []Effect{
				{economy.ShockInflation, 0.06},
				{economy.ShockCapitalDestruction, 0.03},
			},
			Category: CategoryNegative,
			Duration: 1,
		},
	}
}

// FindDefinition returns the catalog entry with the given name.
func FindDefinition(catalog []EventDefinition, name string) (EventDefinition, bool) {
	for _, d := range catalog {
		if d.Name == name {
			return d, true
		}
	}
	return EventDefinition{}, false
}
