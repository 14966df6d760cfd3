package events

import (
	"sync"

	"github.com/google/uuid"
)

// HistoricalEvent is the immutable record of one event firing.
type HistoricalEvent struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Year        int       `json:"year"`
}

// EventLog is the in-memory append-only log of fired events.
type EventLog struct {
	mu     sync.RWMutex
	events []HistoricalEvent
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{
		events: make([]HistoricalEvent, 0),
	}
}

// Append adds a new record. Records are immutable once appended.
func (el *EventLog) Append(event HistoricalEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(el.events, event)
}

// GetByYear returns all events that fired in a given simulation year.
func (el *EventLog) GetByYear(year int) []HistoricalEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []HistoricalEvent
	for _, e := range el.events {
		if e.Year == year {
			result = append(result, e)
		}
	}
	return result
}

// Recent returns the newest count records, oldest first.
func (el *EventLog) Recent(count int) []HistoricalEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if count <= 0 {
		return nil
	}
	start := len(el.events) - count
	if start < 0 {
		start = 0
	}
	out := make([]HistoricalEvent, len(el.events)-start)
	copy(out, el.events[start:])
	return out
}

// Replay returns a copy of the full history.
func (el *EventLog) Replay() []HistoricalEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	out := make([]HistoricalEvent, len(el.events))
	copy(out, el.events)
	return out
}

// Len returns the number of recorded firings.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}
