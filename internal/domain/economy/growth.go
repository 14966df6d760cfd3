// Package economy defines the three coupled economic models of the simulation:
// the Solow growth model, the monetary model and the fiscal model.
// This package is PURE and must NOT import any infrastructure packages
// (logging, metrics, config).
package economy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameters indicates a model cannot be built from the given parameters.
var ErrInvalidParameters = errors.New("invalid model parameters")

// GrowthParameters configures the Cobb-Douglas Solow model.
type GrowthParameters struct {
	Alpha float64 `json:"alpha" yaml:"alpha"` // capital share, (0,1)
	Delta float64 `json:"delta" yaml:"delta"` // depreciation rate
	N     float64 `json:"n" yaml:"n"`         // population growth rate
	G     float64 `json:"g" yaml:"g"`         // technology growth rate
	S     float64 `json:"s" yaml:"s"`         // savings rate, [0,1]
	A0    float64 `json:"a0" yaml:"a0"`       // initial technology
	K0    float64 `json:"k0" yaml:"k0"`       // initial capital
	L0    float64 `json:"l0" yaml:"l0"`       // initial labor
}

// DefaultGrowthParameters returns the baseline economy.
func DefaultGrowthParameters() GrowthParameters {
	return GrowthParameters{
		Alpha: 0.3,
		Delta: 0.05,
		N:     0.02,
		G:     0.01,
		S:     0.2,
		A0:    1.0,
		K0:    100,
		L0:    1000,
	}
}

// Validate rejects parameter sets that would make the model degenerate
// (division by zero labor or output, non-finite state).
func (p GrowthParameters) Validate() error {
	values := map[string]float64{
		"alpha": p.Alpha, "delta": p.Delta, "n": p.N, "g": p.G,
		"s": p.S, "a0": p.A0, "k0": p.K0, "l0": p.L0,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameters, name)
		}
	}

	switch {
	case p.Alpha <= 0 || p.Alpha >= 1:
		return fmt.Errorf("%w: alpha must be in (0,1), got %v", ErrInvalidParameters, p.Alpha)
	case p.Delta < 0:
		return fmt.Errorf("%w: delta must be non-negative, got %v", ErrInvalidParameters, p.Delta)
	case p.S < 0 || p.S > 1:
		return fmt.Errorf("%w: savings rate must be in [0,1], got %v", ErrInvalidParameters, p.S)
	case p.N <= -1:
		return fmt.Errorf("%w: population growth must exceed -1, got %v", ErrInvalidParameters, p.N)
	case p.G <= -1:
		return fmt.Errorf("%w: technology growth must exceed -1, got %v", ErrInvalidParameters, p.G)
	case p.A0 <= 0:
		return fmt.Errorf("%w: initial technology must be positive, got %v", ErrInvalidParameters, p.A0)
	case p.K0 <= 0:
		return fmt.Errorf("%w: initial capital must be positive, got %v", ErrInvalidParameters, p.K0)
	case p.L0 <= 0:
		return fmt.Errorf("%w: initial labor must be positive, got %v", ErrInvalidParameters, p.L0)
	}
	return nil
}

// GrowthOverrides is a partial GrowthParameters. Nil fields keep the base value.
type GrowthOverrides struct {
	Alpha *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Delta *float64 `json:"delta,omitempty" yaml:"delta,omitempty"`
	N     *float64 `json:"n,omitempty" yaml:"n,omitempty"`
	G     *float64 `json:"g,omitempty" yaml:"g,omitempty"`
	S     *float64 `json:"s,omitempty" yaml:"s,omitempty"`
	A0    *float64 `json:"a0,omitempty" yaml:"a0,omitempty"`
	K0    *float64 `json:"k0,omitempty" yaml:"k0,omitempty"`
	L0    *float64 `json:"l0,omitempty" yaml:"l0,omitempty"`
}

// Apply returns base with every non-nil override substituted.
func (o GrowthOverrides) Apply(base GrowthParameters) GrowthParameters {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.Alpha, o.Alpha)
	set(&base.Delta, o.Delta)
	set(&base.N, o.N)
	set(&base.G, o.G)
	set(&base.S, o.S)
	set(&base.A0, o.A0)
	set(&base.K0, o.K0)
	set(&base.L0, o.L0)
	return base
}

// GrowthState is the evolving state of the Solow model.
// Output and every field below it are derived from (technology, capital,
// labor, alpha, s) and are recomputed whenever an input changes.
type GrowthState struct {
	Year       int     `json:"year"`
	Technology float64 `json:"technology"`
	Capital    float64 `json:"capital"`
	Labor      float64 `json:"labor"`

	Output           float64 `json:"output"`
	Consumption      float64 `json:"consumption"`
	Investment       float64 `json:"investment"`
	GDPPerCapita     float64 `json:"gdp_per_capita"`
	CapitalPerWorker float64 `json:"capital_per_worker"`
	OutputPerWorker  float64 `json:"output_per_worker"`
}

// GrowthModel advances a Solow economy one year at a time.
type GrowthModel struct {
	params GrowthParameters
	state  GrowthState

	// Growth-rate memo. prevGDPPerCapita == 0 means "no previous reading".
	prevGDPPerCapita float64
	lastGrowthRate   float64
	lastRecordedYear int
}

// NewGrowthModel validates params and builds a model at year 0.
func NewGrowthModel(params GrowthParameters) (*GrowthModel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m := &GrowthModel{
		params: params,
		state: GrowthState{
			Technology: params.A0,
			Capital:    params.K0,
			Labor:      params.L0,
		},
		lastRecordedYear: -1,
	}
	m.updateDerived()
	return m, nil
}

// Params returns a copy of the current parameters.
func (m *GrowthModel) Params() GrowthParameters {
	return m.params
}

// State returns a copy of the current state.
func (m *GrowthModel) State() GrowthState {
	return m.state
}

func cobbDouglas(technology, capital, labor, alpha float64) float64 {
	return technology * math.Pow(capital, alpha) * math.Pow(labor, 1-alpha)
}

func (m *GrowthModel) updateDerived() {
	st := &m.state
	st.Output = cobbDouglas(st.Technology, st.Capital, st.Labor, m.params.Alpha)
	st.GDPPerCapita = st.Output / st.Labor
	st.CapitalPerWorker = st.Capital / st.Labor
	st.OutputPerWorker = st.Output / st.Labor
	st.Consumption = (1 - m.params.S) * st.Output
	st.Investment = m.params.S * st.Output
}

// Step advances exactly one year. Output for capital accumulation is taken
// from the pre-step technology, capital and labor.
func (m *GrowthModel) Step() {
	st := m.state
	p := m.params

	output := cobbDouglas(st.Technology, st.Capital, st.Labor, p.Alpha)
	investment := p.S * output
	depreciation := p.Delta * st.Capital

	m.state.Year++
	m.state.Technology = st.Technology * (1 + p.G)
	m.state.Labor = st.Labor * (1 + p.N)
	m.state.Capital = math.Max(st.Capital+investment-depreciation, 0)

	m.updateDerived()
}

// WarmUpStep advances technology, labor and capital by one step while
// leaving the year counter untouched. Used by equilibration.
func (m *GrowthModel) WarmUpStep() {
	year := m.state.Year
	m.Step()
	m.state.Year = year
}

// SetSavingsRate sets s from a percentage. No bounds are enforced.
func (m *GrowthModel) SetSavingsRate(percent float64) {
	m.params.S = percent / 100
	m.updateDerived()
}

// ApplyShock applies a one-shot mutation. Kinds routed to other models
// are ignored.
func (m *GrowthModel) ApplyShock(kind ShockKind, magnitude float64) {
	switch kind {
	case ShockTechnology:
		m.state.Technology *= 1 + magnitude
	case ShockProductivity:
		m.params.G += magnitude
	case ShockPopulation:
		m.state.Labor *= 1 + magnitude
	case ShockDepreciation:
		m.params.Delta += magnitude
	case ShockCapitalDestruction:
		m.state.Capital = math.Max(m.state.Capital*(1-math.Abs(magnitude)), 0)
	}
	m.updateDerived()
}

// RecordGrowthRate returns the percentage change in GDP per capita since the
// previous call and advances the memo to the current value. It returns 0
// before year 2 without touching the memo, and 0 when there is no previous
// reading. Calling it twice without an intervening Step yields 0 the second
// time; the engine calls it exactly once per tick.
func (m *GrowthModel) RecordGrowthRate() float64 {
	if m.state.Year < 2 {
		m.lastGrowthRate = 0
		m.lastRecordedYear = m.state.Year
		return 0
	}

	current := m.state.GDPPerCapita
	previous := m.prevGDPPerCapita
	if previous == 0 {
		previous = current
	}
	m.prevGDPPerCapita = current

	rate := 0.0
	if previous != 0 {
		rate = (current - previous) / previous * 100
	}
	m.lastGrowthRate = rate
	m.lastRecordedYear = m.state.Year
	return rate
}

// GrowthRate returns the value produced by the most recent RecordGrowthRate
// call without side effects.
func (m *GrowthModel) GrowthRate() float64 {
	return m.lastGrowthRate
}

// LastRecordedYear returns the year at which RecordGrowthRate last ran, or -1.
func (m *GrowthModel) LastRecordedYear() int {
	return m.lastRecordedYear
}

// ResetGrowthMemo forgets the previous GDP reading so the next growth rate
// starts from zero.
func (m *GrowthModel) ResetGrowthMemo() {
	m.prevGDPPerCapita = 0
	m.lastGrowthRate = 0
	m.lastRecordedYear = -1
}
