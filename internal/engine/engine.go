package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/MRamiBalles/MacroEconSim/server/internal/domain/economy"
	"github.com/MRamiBalles/MacroEconSim/server/internal/events"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/logger"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/metrics"
	"github.com/MRamiBalles/MacroEconSim/server/internal/random"
)

var (
	// ErrPaused is returned by Tick while the simulation waits for Resume.
	ErrPaused = errors.New("simulation paused")
	// ErrNotEquilibrated is returned by Tick before equilibration completes.
	ErrNotEquilibrated = errors.New("simulation not equilibrated")
)

// Options configures an Engine. Zero-valued fields take defaults.
type Options struct {
	Growth   economy.GrowthOverrides     // applied over economy.DefaultGrowthParameters()
	Monetary *economy.MonetaryParameters // nil means economy.DefaultMonetaryParameters()
	Fiscal   *economy.FiscalParameters   // nil means economy.DefaultFiscalParameters()
	Catalog  []events.EventDefinition    // nil means events.DefaultCatalog()
	Source   random.Source               // nil means a freshly seeded source
	Logger   *logger.Logger
	Metrics  *metrics.Collector // nil disables metrics
}

// State is the read-only projection shown to the presentation layer.
type State struct {
	Year         int     `json:"year"`
	GDPPerCapita float64 `json:"gdp_per_capita"`
	CapitalStock float64 `json:"capital_stock"`
	Population   float64 `json:"population"`
	GrowthRate   float64 `json:"growth_rate"`  // percent
	Inflation    float64 `json:"inflation"`    // percent
	Unemployment float64 `json:"unemployment"` // percent
	EventMessage string  `json:"event_message"`
}

// Details exposes the full state and parameters of every model.
type Details struct {
	Growth         economy.GrowthState        `json:"growth"`
	GrowthParams   economy.GrowthParameters   `json:"growth_params"`
	Monetary       economy.MonetaryState      `json:"monetary"`
	MonetaryParams economy.MonetaryParameters `json:"monetary_params"`
	Fiscal         economy.FiscalState        `json:"fiscal"`
	FiscalParams   economy.FiscalParameters   `json:"fiscal_params"`
	Multiplier     float64                    `json:"fiscal_multiplier"`
}

// Engine is the simulation controller. It exclusively owns the three models,
// the event system and the bounded history.
type Engine struct {
	logger  *logger.Logger
	metrics *metrics.Collector
	rng     random.Source

	monetaryParams economy.MonetaryParameters
	fiscalParams   economy.FiscalParameters
	catalog        []events.EventDefinition

	growth   *economy.GrowthModel
	monetary *economy.MonetaryModel
	fiscal   *economy.FiscalModel
	events   *events.EventSystem
	history  *History

	paused       bool
	equilibrated bool
	generation   uint64
	lastImpact   *EventImpact

	observers []Observer
}

// New validates the options and builds an engine ready for equilibration.
func New(opts Options) (*Engine, error) {
	monetary := economy.DefaultMonetaryParameters()
	if opts.Monetary != nil {
		monetary = *opts.Monetary
	}
	fiscal := economy.DefaultFiscalParameters()
	if opts.Fiscal != nil {
		fiscal = *opts.Fiscal
	}
	if opts.Catalog == nil {
		opts.Catalog = events.DefaultCatalog()
	}
	if opts.Source == nil {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed random source: %w", err)
		}
		opts.Source = random.NewSource(seed)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if err := events.ValidateCatalog(opts.Catalog); err != nil {
		return nil, err
	}

	e := &Engine{
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		rng:            opts.Source,
		monetaryParams: monetary,
		fiscalParams:   fiscal,
		catalog:        opts.Catalog,
	}
	if err := e.Reset(opts.Growth.Apply(economy.DefaultGrowthParameters())); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset validates params and recreates every model, the event system and the
// history in one step. Equilibration is required again afterwards. On error
// the engine is left untouched.
func (e *Engine) Reset(params economy.GrowthParameters) error {
	growth, err := economy.NewGrowthModel(params)
	if err != nil {
		return err
	}
	es, err := events.NewEventSystem(e.catalog, e.rng, nil)
	if err != nil {
		return err
	}

	e.growth = growth
	e.monetary = economy.NewMonetaryModel(e.monetaryParams, e.rng)
	e.fiscal = economy.NewFiscalModel(e.fiscalParams)
	e.events = es
	e.history = NewHistory(HistoryCapacity)
	e.paused = false
	e.equilibrated = false
	e.lastImpact = nil
	e.generation++

	e.logger.WithFields(map[string]interface{}{
		"alpha": params.Alpha,
		"s":     params.S,
		"k0":    params.K0,
		"l0":    params.L0,
	}).Info("Economy initialized")
	return nil
}

// Subscribe registers an observer for tick and event notifications.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// Tick advances the economy by one year. The order of operations is fixed:
// event check, effect application, growth step, growth rate, monetary step,
// fiscal step, pause on a new event, event decay, history append.
func (e *Engine) Tick() (TickReport, error) {
	if !e.equilibrated {
		return TickReport{}, ErrNotEquilibrated
	}
	if e.paused {
		return TickReport{}, ErrPaused
	}
	start := time.Now()

	fired := e.events.CheckForEvents(e.growth.State().Year)

	var before, after Indicators
	if fired != nil {
		before = e.indicators()
	}
	e.events.ApplyEventEffects(e.growth, e.monetary)
	if fired != nil {
		after = e.indicators()
	}

	e.growth.Step()
	rate := e.growth.RecordGrowthRate()
	e.monetary.Step(rate / 100)
	e.fiscal.Step(e.growth.State().Output)

	var impact *EventImpact
	if fired != nil {
		impact = &EventImpact{Event: *fired, Before: before, After: after}
		e.lastImpact = impact
		e.paused = true
		e.logger.Event("EVENT_FIRED", fired.Name, fmt.Sprintf("year %d: %s", fired.StartYear, fired.Description))
		e.logger.Info("Simulation paused for event: " + fired.Name)
		if e.metrics != nil {
			e.metrics.RecordEvent()
			e.metrics.RecordPause(true)
		}
	}

	e.events.UpdateActiveEvents()

	snap := e.snapshot()
	e.history.Append(snap)

	report := TickReport{
		Snapshot: snap,
		State:    e.State(),
		Impact:   impact,
		Paused:   e.paused,
	}

	if e.metrics != nil {
		e.metrics.RecordTick(time.Since(start))
		e.metrics.RecordEconomy(snap.GDPPerCapita, snap.Inflation, snap.Unemployment)
	}
	e.logger.WithFields(map[string]interface{}{
		"year":         snap.Year,
		"gdp_pc":       snap.GDPPerCapita,
		"growth":       snap.GrowthRate,
		"inflation":    snap.Inflation,
		"unemployment": snap.Unemployment,
	}).Debug("Tick completed")

	for _, o := range e.observers {
		if impact != nil {
			o.EventFired(*impact)
		}
		o.TickCompleted(report)
	}
	return report, nil
}

// Pause stops ticking until Resume is called.
func (e *Engine) Pause() {
	if e.paused {
		return
	}
	e.paused = true
	e.logger.Info("Simulation paused")
	if e.metrics != nil {
		e.metrics.RecordPause(true)
	}
}

// Resume clears a pause, whether manual or caused by an event.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.paused = false
	e.lastImpact = nil
	e.logger.Info("Simulation resumed")
	if e.metrics != nil {
		e.metrics.RecordPause(false)
	}
}

// Paused reports whether Tick is blocked on Resume.
func (e *Engine) Paused() bool {
	return e.paused
}

// Equilibrated reports whether the warm-up has completed.
func (e *Engine) Equilibrated() bool {
	return e.equilibrated
}

// PendingImpact returns the impact of the event that caused the current
// pause, if any.
func (e *Engine) PendingImpact() (EventImpact, bool) {
	if e.lastImpact == nil {
		return EventImpact{}, false
	}
	return *e.lastImpact, true
}

// SetSavingsRate sets the savings rate from a percentage.
func (e *Engine) SetSavingsRate(percent float64) {
	e.growth.SetSavingsRate(percent)
}

// SetInterestRate sets the policy rate from a percentage.
func (e *Engine) SetInterestRate(percent float64) {
	e.monetary.SetInterestRate(percent)
}

// SetGovernmentSpending sets spending as a share of GDP from a percentage.
func (e *Engine) SetGovernmentSpending(percent float64) {
	e.fiscal.SetGovernmentSpending(percent)
}

// SetTaxRate sets the tax rate from a percentage.
func (e *Engine) SetTaxRate(percent float64) {
	e.fiscal.SetTaxRate(percent)
}

// State returns the current projection. It has no side effects; the growth
// rate is the one recorded by the last tick.
func (e *Engine) State() State {
	g := e.growth.State()
	m := e.monetary.State()
	return State{
		Year:         g.Year,
		GDPPerCapita: g.GDPPerCapita,
		CapitalStock: g.Capital,
		Population:   g.Labor,
		GrowthRate:   e.growth.GrowthRate(),
		Inflation:    m.Inflation * 100,
		Unemployment: m.Unemployment * 100,
		EventMessage: e.events.EventMessage(),
	}
}

// Details returns every model's state and parameters.
func (e *Engine) Details() Details {
	return Details{
		Growth:         e.growth.State(),
		GrowthParams:   e.growth.Params(),
		Monetary:       e.monetary.State(),
		MonetaryParams: e.monetary.Params(),
		Fiscal:         e.fiscal.State(),
		FiscalParams:   e.fiscal.Params(),
		Multiplier:     e.fiscal.FiscalMultiplier(e.growth.GrowthRate() / 100),
	}
}

// History returns the recorded years, oldest first.
func (e *Engine) History() []EconomySnapshot {
	return e.history.Snapshots()
}

// ActiveEvents returns copies of the events currently in force.
func (e *Engine) ActiveEvents() []events.ActiveEvent {
	return e.events.ActiveEvents()
}

// EventHistory returns every firing since the last Reset, oldest first.
func (e *Engine) EventHistory() []events.HistoricalEvent {
	return e.events.Log().Replay()
}

// Catalog returns the event catalog in priority order.
func (e *Engine) Catalog() []events.EventDefinition {
	return e.events.Catalog()
}

// RecentEvents returns up to count of the latest fired events, oldest first.
func (e *Engine) RecentEvents(count int) []events.HistoricalEvent {
	return e.events.RecentEvents(count)
}

func (e *Engine) indicators() Indicators {
	g := e.growth.State()
	m := e.monetary.State()
	return Indicators{
		GDPPerCapita: g.GDPPerCapita,
		Capital:      g.Capital,
		Population:   g.Labor,
		Technology:   g.Technology,
		Inflation:    m.Inflation * 100,
		Unemployment: m.Unemployment * 100,
	}
}

func (e *Engine) snapshot() EconomySnapshot {
	g := e.growth.State()
	m := e.monetary.State()
	return EconomySnapshot{
		Year:         g.Year,
		GDPPerCapita: g.GDPPerCapita,
		Capital:      g.Capital,
		Population:   g.Labor,
		GrowthRate:   e.growth.GrowthRate(),
		Inflation:    m.Inflation * 100,
		Unemployment: m.Unemployment * 100,
	}
}
