package events

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MRamiBalles/MacroEconSim/server/internal/domain/economy"
	"github.com/MRamiBalles/MacroEconSim/server/internal/random"
)

// StableMessage is reported when no event is active.
const StableMessage = "Economy is stable..."

// idNamespace scopes the name-based UUIDs given to active events.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("macroeconsim/events"))

// ActiveEvent is a catalog definition currently affecting the economy.
type ActiveEvent struct {
	EventDefinition
	ID                uuid.UUID `json:"id"`
	StartYear         int       `json:"start_year"`
	RemainingDuration int       `json:"remaining_duration"`
}

// Shockable is any model that accepts routed shocks.
type Shockable interface {
	ApplyShock(kind economy.ShockKind, magnitude float64)
}

// EventSystem rolls the catalog each tick and keeps the active set.
// Lifecycle per firing: Dormant -> Active -> (decaying) -> Evicted.
type EventSystem struct {
	catalog []EventDefinition
	active  []*ActiveEvent
	log     *EventLog
	rng     random.Source
	fired   uint64
}

// NewEventSystem creates a system over a validated catalog.
func NewEventSystem(catalog []EventDefinition, rng random.Source, log *EventLog) (*EventSystem, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	if log == nil {
		log = NewEventLog()
	}

	defs := make([]EventDefinition, len(catalog))
	copy(defs, catalog)

	return &EventSystem{
		catalog: defs,
		active:  make([]*ActiveEvent, 0),
		log:     log,
		rng:     rng,
	}, nil
}

// CheckForEvents rolls the catalog in declared order and activates the first
// entry whose independent draw succeeds. At most one event fires per tick;
// later entries are not rolled once one fires. Year 0 never fires.
func (es *EventSystem) CheckForEvents(year int) *ActiveEvent {
	if year == 0 {
		return nil
	}

	for _, def := range es.catalog {
		if es.rng.Float64() >= def.Probability {
			continue
		}

		es.fired++
		ev := &ActiveEvent{
			EventDefinition:   cloneDefinition(def),
			ID:                uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d/%d/%s", es.fired, year, def.Name))),
			StartYear:         year,
			RemainingDuration: def.Duration,
		}
		es.active = append(es.active, ev)
		es.log.Append(HistoricalEvent{
			ID:          ev.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
			Year:        year,
		})

		out := *ev
		return &out
	}
	return nil
}

// ApplyEventEffects routes every effect of every active event to its target
// model. It runs each tick an event is active, so multi-year events shock
// the economy once per remaining year.
func (es *EventSystem) ApplyEventEffects(growth, monetary Shockable) {
	for _, ev := range es.active {
		for _, eff := range ev.Effects {
			switch eff.Kind.Target() {
			case economy.TargetGrowth:
				growth.ApplyShock(eff.Kind, eff.Magnitude)
			case economy.TargetMonetary:
				monetary.ApplyShock(eff.Kind, eff.Magnitude)
			}
		}
	}
}

// UpdateActiveEvents counts every active event down by one tick and evicts
// those that reach zero.
func (es *EventSystem) UpdateActiveEvents() {
	kept := es.active[:0]
	for _, ev := range es.active {
		ev.RemainingDuration--
		if ev.RemainingDuration > 0 {
			kept = append(kept, ev)
		}
	}
	for i := len(kept); i < len(es.active); i++ {
		es.active[i] = nil
	}
	es.active = kept
}

// ActiveEvents returns copies of the active set in activation order.
func (es *EventSystem) ActiveEvents() []ActiveEvent {
	out := make([]ActiveEvent, len(es.active))
	for i, ev := range es.active {
		out[i] = *ev
		out[i].EventDefinition = cloneDefinition(ev.EventDefinition)
	}
	return out
}

// EventMessage summarizes the active set for display.
func (es *EventSystem) EventMessage() string {
	if len(es.active) == 0 {
		return StableMessage
	}

	parts := make([]string, len(es.active))
	for i, ev := range es.active {
		parts[i] = fmt.Sprintf("%s: %s (%d years remaining)", ev.Name, ev.Description, ev.RemainingDuration)
	}
	return strings.Join(parts, " | ")
}

// RecentEvents returns the newest count firings, oldest first.
func (es *EventSystem) RecentEvents(count int) []HistoricalEvent {
	return es.log.Recent(count)
}

// Log exposes the firing history.
func (es *EventSystem) Log() *EventLog {
	return es.log
}

// Catalog returns a copy of the catalog in priority order.
func (es *EventSystem) Catalog() []EventDefinition {
	out := make([]EventDefinition, len(es.catalog))
	for i, d := range es.catalog {
		out[i] = cloneDefinition(d)
	}
	return out
}

func cloneDefinition(d EventDefinition) EventDefinition {
	d.Effects = append([]Effect(nil), d.Effects...)
	return d
}
