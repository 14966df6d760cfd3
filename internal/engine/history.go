package engine

// HistoryCapacity is the number of yearly snapshots kept in memory.
const HistoryCapacity = 100

// EconomySnapshot is one recorded year.
type EconomySnapshot struct {
	Year         int     `json:"year"`
	GDPPerCapita float64 `json:"gdp_per_capita"`
	Capital      float64 `json:"capital"`
	Population   float64 `json:"population"`
	GrowthRate   float64 `json:"growth_rate"`  // percent
	Inflation    float64 `json:"inflation"`    // percent
	Unemployment float64 `json:"unemployment"` // percent
}

// History is a fixed-capacity ring of snapshots. Once full, appending evicts
// the oldest entry.
type History struct {
	buf   []EconomySnapshot
	start int
	size  int
}

// NewHistory creates an empty history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]EconomySnapshot, capacity)}
}

// Append records a snapshot.
func (h *History) Append(s EconomySnapshot) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = s
		h.size++
		return
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return h.size
}

// Cap returns the maximum number of stored snapshots.
func (h *History) Cap() int {
	return len(h.buf)
}

// Last returns the newest snapshot.
func (h *History) Last() (EconomySnapshot, bool) {
	if h.size == 0 {
		return EconomySnapshot{}, false
	}
	return h.buf[(h.start+h.size-1)%len(h.buf)], true
}

// Snapshots returns a copy ordered oldest to newest.
func (h *History) Snapshots() []EconomySnapshot {
	out := make([]EconomySnapshot, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}
