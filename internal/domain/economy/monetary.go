package economy

import (
	"math"

	"github.com/MRamiBalles/MacroEconSim/server/internal/random"
)

// Monetary model constants.
const (
	PotentialGrowth     = 0.02   // trend growth; output gap is measured against it
	InflationFloor      = -0.05  // inflation never falls below this
	UnemploymentFloor   = 0.02   // frictional unemployment
	MaxInterestRate     = 0.15   // policy-rate ceiling
	InterestRateStep    = 0.0025 // one policy move
	InflationBand       = 0.01   // tolerance around the target before the rate moves
	inflationNoiseScale = 0.01
	unemploymentNoise   = 0.005
)

// MonetaryParameters are the central-bank levers.
type MonetaryParameters struct {
	InterestRate      float64 `json:"interest_rate"`
	InflationTarget   float64 `json:"inflation_target"`
	MoneySupplyGrowth float64 `json:"money_supply_growth"`
}

// DefaultMonetaryParameters returns the baseline policy.
func DefaultMonetaryParameters() MonetaryParameters {
	return MonetaryParameters{
		InterestRate:      0.03,
		InflationTarget:   0.02,
		MoneySupplyGrowth: 0.03,
	}
}

// MonetaryState holds prices and the labor market.
type MonetaryState struct {
	Inflation    float64 `json:"inflation"`
	Unemployment float64 `json:"unemployment"`
	MoneySupply  float64 `json:"money_supply"`
	PriceLevel   float64 `json:"price_level"`
}

// DefaultMonetaryState returns the starting monetary conditions.
func DefaultMonetaryState() MonetaryState {
	return MonetaryState{
		Inflation:    0.02,
		Unemployment: 0.05,
		MoneySupply:  1000,
		PriceLevel:   1.0,
	}
}

// MonetaryModel evolves inflation (Phillips curve with adaptive expectations),
// unemployment (Okun's law) and the policy rate (a band rule).
type MonetaryModel struct {
	params MonetaryParameters
	state  MonetaryState
	rng    random.Source
}

// NewMonetaryModel builds a model at the default state drawing noise from rng.
func NewMonetaryModel(params MonetaryParameters, rng random.Source) *MonetaryModel {
	return &MonetaryModel{
		params: params,
		state:  DefaultMonetaryState(),
		rng:    rng,
	}
}

// Params returns a copy of the current parameters.
func (m *MonetaryModel) Params() MonetaryParameters {
	return m.params
}

// State returns a copy of the current state.
func (m *MonetaryModel) State() MonetaryState {
	return m.state
}

// noise maps one uniform draw on [0,1) to [-0.5,0.5) scaled by amplitude.
func (m *MonetaryModel) noise(amplitude float64) float64 {
	return (m.rng.Float64() - 0.5) * amplitude
}

// Step advances one year given GDP growth as a fraction (0.02 == 2%).
// Two draws are consumed: inflation noise first, then unemployment noise.
func (m *MonetaryModel) Step(gdpGrowth float64) {
	m.state.MoneySupply *= 1 + m.params.MoneySupplyGrowth

	expectedInflation := m.state.Inflation
	outputGap := gdpGrowth - PotentialGrowth

	inflation := expectedInflation + 0.5*outputGap + m.noise(inflationNoiseScale)
	m.state.Inflation = math.Max(inflation, InflationFloor)

	unemployment := m.state.Unemployment - 0.5*outputGap + m.noise(unemploymentNoise)
	m.state.Unemployment = math.Max(UnemploymentFloor, unemployment)

	m.state.PriceLevel *= 1 + m.state.Inflation

	switch {
	case m.state.Inflation > m.params.InflationTarget+InflationBand:
		m.params.InterestRate = math.Min(MaxInterestRate, m.params.InterestRate+InterestRateStep)
	case m.state.Inflation < m.params.InflationTarget-InflationBand:
		m.params.InterestRate = math.Max(0, m.params.InterestRate-InterestRateStep)
	}
}

// SetInterestRate sets the policy rate from a percentage.
func (m *MonetaryModel) SetInterestRate(percent float64) {
	m.params.InterestRate = percent / 100
}

// ApplyShock applies a one-shot mutation. Kinds routed to other models
// are ignored.
func (m *MonetaryModel) ApplyShock(kind ShockKind, magnitude float64) {
	switch kind {
	case ShockInflation:
		m.state.Inflation += magnitude
	case ShockUnemployment:
		m.state.Unemployment += magnitude
	case ShockMoneySupply:
		m.state.MoneySupply *= 1 + magnitude
	}
}
