package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/logger"
)

// Default cadences for interactive runs.
const (
	DefaultTickInterval          = 500 * time.Millisecond
	DefaultEquilibrationInterval = 50 * time.Millisecond
)

// Ticker drives an Engine on a fixed cadence. Ticks never overlap: every
// access to the engine goes through the ticker's mutex, including external
// mutations submitted with Do.
type Ticker struct {
	mu       sync.Mutex
	engine   *Engine
	logger   *logger.Logger
	interval time.Duration
	resumeCh chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewTicker creates a ticker for e. A non-positive interval uses
// DefaultTickInterval.
func NewTicker(e *Engine, interval time.Duration, log *logger.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Ticker{
		engine:   e,
		logger:   log,
		interval: interval,
		resumeCh: make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Do runs fn with exclusive access to the engine.
func (t *Ticker) Do(fn func(*Engine)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.engine)
}

// Resume clears a pause and wakes the loop if it is waiting.
func (t *Ticker) Resume() {
	t.Do(func(e *Engine) { e.Resume() })
	select {
	case t.resumeCh <- struct{}{}:
	default:
	}
}

// Pause asks the engine to stop after the current tick.
func (t *Ticker) Pause() {
	t.Do(func(e *Engine) { e.Pause() })
}

// Equilibrate runs the warm-up one batch per interval, reporting progress
// after every batch.
func (t *Ticker) Equilibrate(ctx context.Context, interval time.Duration, onProgress func(float64)) error {
	if interval <= 0 {
		interval = DefaultEquilibrationInterval
	}

	var q *Equilibration
	t.Do(func(e *Engine) { q = e.BeginEquilibration() })

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.stopChan:
			return nil
		case <-ticker.C:
			var (
				progress float64
				done     bool
				err      error
			)
			t.Do(func(*Engine) { progress, done, err = q.Batch() })
			if err != nil {
				return err
			}
			if onProgress != nil {
				onProgress(progress)
			}
			if done {
				return nil
			}
		}
	}
}

// Start runs the tick loop until ctx is cancelled, Stop is called or a tick
// fails. While the engine is paused the loop blocks until Resume.
func (t *Ticker) Start(ctx context.Context) error {
	t.logger.Info("Engine Ticker started.")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Engine Ticker stopped by context.")
			return ctx.Err()
		case <-t.stopChan:
			t.logger.Info("Engine Ticker stopped manually.")
			return nil
		case <-ticker.C:
			if t.stopped() {
				t.logger.Info("Engine Ticker stopped manually.")
				return nil
			}
			paused, err := t.tick()
			if err != nil && !errors.Is(err, ErrPaused) {
				t.logger.Error("Tick failed: " + err.Error())
				return err
			}
			if !paused && err == nil {
				continue
			}
			if werr := t.waitForResume(ctx); werr != nil {
				return werr
			}
			if t.stopped() {
				t.logger.Info("Engine Ticker stopped manually.")
				return nil
			}
			ticker.Reset(t.interval)
		}
	}
}

// Stop gracefully stops the ticker.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stopChan) })
}

func (t *Ticker) tick() (paused bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	report, err := t.engine.Tick()
	if err != nil {
		return t.engine.Paused(), err
	}
	return report.Paused, nil
}

// waitForResume blocks until the engine is no longer paused. It returns
// ctx.Err() on cancellation and nil when stopped.
func (t *Ticker) waitForResume(ctx context.Context) error {
	for {
		var paused bool
		t.Do(func(e *Engine) { paused = e.Paused() })
		if !paused {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.stopChan:
			return nil
		case <-t.resumeCh:
		}
	}
}

func (t *Ticker) stopped() bool {
	select {
	case <-t.stopChan:
		return true
	default:
		return false
	}
}
