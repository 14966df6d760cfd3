package random

import "math/rand"

// Source produces uniform draws on [0,1).
type Source interface {
	Float64() float64
}

// NewSource returns a seeded pseudo-random source.
// The same seed always yields the same sequence of draws.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Sequence is a Source that replays a fixed list of draws, cycling when
// exhausted. Used to script exact outcomes in tests and replays.
type Sequence struct {
	values []float64
	next   int
	drawn  int
}

// NewSequence creates a Sequence over values. An empty list always draws 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	s.drawn++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.drawn
}
