// Package metrics provides observability for the simulation loop.
package metrics

import (
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance metrics.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Event metrics
	EventsFired int64
	Pauses      int64
	Resumes     int64

	// Equilibration
	EquilibrationSteps     int64
	EquilibrationRuns      int64
	EquilibrationConverged int64

	// Economy gauges, stored as float64 bits
	gdpPerCapita uint64
	inflation    uint64
	unemployment uint64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = NewCollector()

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{StartTime: time.Now()}
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordEconomy stores the latest headline indicators.
func (c *Collector) RecordEconomy(gdpPerCapita, inflation, unemployment float64) {
	atomic.StoreUint64(&c.gdpPerCapita, floatBits(gdpPerCapita))
	atomic.StoreUint64(&c.inflation, floatBits(inflation))
	atomic.StoreUint64(&c.unemployment, floatBits(unemployment))
}

// RecordEvent records an event firing.
func (c *Collector) RecordEvent() {
	atomic.AddInt64(&c.EventsFired, 1)
}

// RecordPause records a pause or resume transition.
func (c *Collector) RecordPause(paused bool) {
	if paused {
		atomic.AddInt64(&c.Pauses, 1)
	} else {
		atomic.AddInt64(&c.Resumes, 1)
	}
}

// RecordEquilibration records one finished warm-up run.
func (c *Collector) RecordEquilibration(steps int, converged bool) {
	atomic.AddInt64(&c.EquilibrationRuns, 1)
	atomic.AddInt64(&c.EquilibrationSteps, int64(steps))
	if converged {
		atomic.AddInt64(&c.EquilibrationConverged, 1)
	}
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)

	var tickAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}

	lastTick := ""
	if !c.LastTickTime.IsZero() {
		lastTick = c.LastTickTime.Format(time.RFC3339)
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      lastTick,
		},

		"events": map[string]interface{}{
			"fired":   atomic.LoadInt64(&c.EventsFired),
			"pauses":  atomic.LoadInt64(&c.Pauses),
			"resumes": atomic.LoadInt64(&c.Resumes),
		},

		"equilibration": map[string]interface{}{
			"runs":      atomic.LoadInt64(&c.EquilibrationRuns),
			"steps":     atomic.LoadInt64(&c.EquilibrationSteps),
			"converged": atomic.LoadInt64(&c.EquilibrationConverged),
		},

		"economy": map[string]interface{}{
			"gdp_per_capita": bitsFloat(atomic.LoadUint64(&c.gdpPerCapita)),
			"inflation":      bitsFloat(atomic.LoadUint64(&c.inflation)),
			"unemployment":   bitsFloat(atomic.LoadUint64(&c.unemployment)),
		},
	}
}

// WritePrometheus writes metrics in Prometheus text format.
func (c *Collector) WritePrometheus(w io.Writer) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	// Tick metrics
	printf("# HELP macrosim_tick_count Total simulated years\n")
	printf("# TYPE macrosim_tick_count counter\n")
	printf("macrosim_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

	printf("# HELP macrosim_tick_latency_max_ms Maximum tick latency\n")
	printf("# TYPE macrosim_tick_latency_max_ms gauge\n")
	printf("macrosim_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

	// Event metrics
	printf("# HELP macrosim_events_fired Total random events fired\n")
	printf("# TYPE macrosim_events_fired counter\n")
	printf("macrosim_events_fired %d\n\n", atomic.LoadInt64(&c.EventsFired))

	printf("# HELP macrosim_pauses_total Pause transitions\n")
	printf("# TYPE macrosim_pauses_total counter\n")
	printf("macrosim_pauses_total{direction=\"pause\"} %d\n", atomic.LoadInt64(&c.Pauses))
	printf("macrosim_pauses_total{direction=\"resume\"} %d\n\n", atomic.LoadInt64(&c.Resumes))

	// Equilibration
	printf("# HELP macrosim_equilibration_steps Total warm-up steps\n")
	printf("# TYPE macrosim_equilibration_steps counter\n")
	printf("macrosim_equilibration_steps %d\n\n", atomic.LoadInt64(&c.EquilibrationSteps))

	// Economy
	printf("# HELP macrosim_gdp_per_capita Latest GDP per capita\n")
	printf("# TYPE macrosim_gdp_per_capita gauge\n")
	printf("macrosim_gdp_per_capita %.4f\n", bitsFloat(atomic.LoadUint64(&c.gdpPerCapita)))
	printf("macrosim_inflation %.6f\n", bitsFloat(atomic.LoadUint64(&c.inflation)))
	printf("macrosim_unemployment %.6f\n", bitsFloat(atomic.LoadUint64(&c.unemployment)))

	return err
}

func floatBits(f float64) uint64 { return math.Float64bits(f) }

func bitsFloat(b uint64) float64 { return math.Float64frombits(b) }
