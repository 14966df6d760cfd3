package economy

import "math"

// Fiscal model constants.
const (
	MaxTaxRate          = 0.6
	DebtCeiling         = 1.0 // debt-to-GDP above which taxes ratchet up
	StabilizerTaxStep   = 0.01
	minFiscalMultiplier = 0.5
	maxFiscalMultiplier = 1.5
)

// FiscalParameters are the government's levers.
type FiscalParameters struct {
	TaxRate            float64 `json:"tax_rate"`
	GovernmentSpending float64 `json:"government_spending"` // share of GDP
	DebtToGDP          float64 `json:"debt_to_gdp"`
}

// DefaultFiscalParameters returns the baseline budget.
func DefaultFiscalParameters() FiscalParameters {
	return FiscalParameters{
		TaxRate:            0.25,
		GovernmentSpending: 0.15,
		DebtToGDP:          0.6,
	}
}

// FiscalState is the government budget position.
type FiscalState struct {
	GovernmentDebt        float64 `json:"government_debt"`
	Deficit               float64 `json:"deficit"`
	TaxRevenue            float64 `json:"tax_revenue"`
	GovernmentExpenditure float64 `json:"government_expenditure"`
}

// FiscalModel tracks the budget and applies an automatic stabilizer.
type FiscalModel struct {
	params FiscalParameters
	state  FiscalState
}

// NewFiscalModel builds a model with zero debt.
func NewFiscalModel(params FiscalParameters) *FiscalModel {
	return &FiscalModel{params: params}
}

// Params returns a copy of the current parameters.
func (m *FiscalModel) Params() FiscalParameters {
	return m.params
}

// State returns a copy of the current state.
func (m *FiscalModel) State() FiscalState {
	return m.state
}

// Step books one year of revenue and spending against gdp. Debt accumulates
// without bound and may turn negative (surplus). When debt-to-GDP exceeds
// DebtCeiling the tax rate ratchets up; it never decreases automatically.
// A non-positive gdp leaves debt-to-GDP and the tax rate unchanged.
func (m *FiscalModel) Step(gdp float64) {
	m.state.TaxRevenue = m.params.TaxRate * gdp
	m.state.GovernmentExpenditure = m.params.GovernmentSpending * gdp
	m.state.Deficit = m.state.GovernmentExpenditure - m.state.TaxRevenue
	m.state.GovernmentDebt += m.state.Deficit

	if gdp <= 0 {
		return
	}
	m.params.DebtToGDP = m.state.GovernmentDebt / gdp

	if m.params.DebtToGDP > DebtCeiling {
		m.params.TaxRate = math.Min(MaxTaxRate, m.params.TaxRate+StabilizerTaxStep)
	}
}

// SetTaxRate sets the tax rate from a percentage.
func (m *FiscalModel) SetTaxRate(percent float64) {
	m.params.TaxRate = percent / 100
}

// SetGovernmentSpending sets spending as a share of GDP from a percentage.
func (m *FiscalModel) SetGovernmentSpending(percent float64) {
	m.params.GovernmentSpending = percent / 100
}

// FiscalMultiplier is advisory and not used by Step.
func (m *FiscalModel) FiscalMultiplier(gdpGrowth float64) float64 {
	return FiscalMultiplier(gdpGrowth)
}

// FiscalMultiplier returns clamp(1 + (0.05 - gdpGrowth)*2, 0.5, 1.5).
func FiscalMultiplier(gdpGrowth float64) float64 {
	return math.Max(minFiscalMultiplier, math.Min(maxFiscalMultiplier, 1.0+(0.05-gdpGrowth)*2))
}
