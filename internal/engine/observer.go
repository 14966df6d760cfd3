package engine

import "github.com/MRamiBalles/MacroEconSim/server/internal/events"

// Indicators are the headline figures compared around an event.
type Indicators struct {
	GDPPerCapita float64 `json:"gdp_per_capita"`
	Capital      float64 `json:"capital"`
	Population   float64 `json:"population"`
	Technology   float64 `json:"technology"`
	Inflation    float64 `json:"inflation"`    // percent
	Unemployment float64 `json:"unemployment"` // percent
}

// EventImpact describes a newly fired event and the indicators immediately
// before and after its effects were applied, ahead of the yearly step.
type EventImpact struct {
	Event  events.ActiveEvent `json:"event"`
	Before Indicators         `json:"before"`
	After  Indicators         `json:"after"`
}

// TickReport is the outcome of one tick.
type TickReport struct {
	Snapshot EconomySnapshot `json:"snapshot"`
	State    State           `json:"state"`
	Impact   *EventImpact    `json:"impact,omitempty"`
	Paused   bool            `json:"paused"`
}

// Observer is notified from inside Tick, on the caller's goroutine.
// Implementations must not call back into the Engine.
type Observer interface {
	TickCompleted(report TickReport)
	EventFired(impact EventImpact)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnTick  func(TickReport)
	OnEvent func(EventImpact)
}

// TickCompleted implements Observer.
func (o ObserverFuncs) TickCompleted(report TickReport) {
	if o.OnTick != nil {
		o.OnTick(report)
	}
}

// EventFired implements Observer.
func (o ObserverFuncs) EventFired(impact EventImpact) {
	if o.OnEvent != nil {
		o.OnEvent(impact)
	}
}
