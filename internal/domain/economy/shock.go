package economy

import (
	"errors"
	"fmt"
)

// ErrUnknownShockKind is returned when parsing a shock name outside the closed set.
var ErrUnknownShockKind = errors.New("unknown shock kind")

// ShockKind names a one-shot mutation an event can apply to a model.
type ShockKind string

const (
	ShockTechnology         ShockKind = "technology"          // A *= 1+m
	ShockProductivity       ShockKind = "productivity"        // g += m
	ShockPopulation         ShockKind = "population"          // L *= 1+m
	ShockDepreciation       ShockKind = "depreciation"        // delta += m
	ShockCapitalDestruction ShockKind = "capital_destruction" // K *= 1-|m|
	ShockInflation          ShockKind = "inflation_shock"     // pi += m
	ShockUnemployment       ShockKind = "unemployment_shock"  // u += m
	ShockMoneySupply        ShockKind = "money_supply_shock"  // M *= 1+m
)

// Target identifies which model a shock is routed to.
type Target int

const (
	TargetNone Target = iota
	TargetGrowth
	TargetMonetary
)

func (t Target) String() string {
	switch t {
	case TargetGrowth:
		return "growth"
	case TargetMonetary:
		return "monetary"
	default:
		return "none"
	}
}

// shockTargets is the routing table. Every ShockKind must appear here.
var shockTargets = map[ShockKind]Target{
	ShockTechnology:         TargetGrowth,
	ShockProductivity:       TargetGrowth,
	ShockPopulation:         TargetGrowth,
	ShockDepreciation:       TargetGrowth,
	ShockCapitalDestruction: TargetGrowth,
	ShockInflation:          TargetMonetary,
	ShockUnemployment:       TargetMonetary,
	ShockMoneySupply:        TargetMonetary,
}

// ShockKinds lists every kind in declaration order.
func ShockKinds() []ShockKind {
	return []ShockKind{
		ShockTechnology,
		ShockProductivity,
		ShockPopulation,
		ShockDepreciation,
		ShockCapitalDestruction,
		ShockInflation,
		ShockUnemployment,
		ShockMoneySupply,
	}
}

// Target returns the model this kind is applied to, or TargetNone.
func (k ShockKind) Target() Target {
	return shockTargets[k]
}

// Valid reports whether k belongs to the closed set of kinds.
func (k ShockKind) Valid() bool {
	return k.Target() != TargetNone
}

// ParseShockKind converts a catalog name into a ShockKind.
func ParseShockKind(name string) (ShockKind, error) {
	k := ShockKind(name)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownShockKind, name)
	}
	return k, nil
}
