package engine

import (
	"context"
	"errors"
	"math"
)

const (
	// EquilibrationBatchSize is the number of warm-up steps per batch.
	EquilibrationBatchSize = 5
	// EquilibrationMaxSteps bounds the warm-up.
	EquilibrationMaxSteps = 200
	// EquilibrationTolerance is the relative one-step change in capital per
	// worker and GDP per capita below which the economy counts as settled.
	EquilibrationTolerance = 0.001
)

// ErrStaleEquilibration is returned when the engine was reset while an
// equilibration was in progress.
var ErrStaleEquilibration = errors.New("equilibration superseded by reset")

// Equilibration is an in-progress warm-up of the growth model. The year stays
// at 0 throughout; monetary and fiscal models are not stepped.
type Equilibration struct {
	engine     *Engine
	generation uint64
	steps      int
	converged  bool
	done       bool
}

// BeginEquilibration starts a warm-up. Run it with Batch until done. On an
// engine that is already equilibrated it completes immediately.
func (e *Engine) BeginEquilibration() *Equilibration {
	q := &Equilibration{engine: e, generation: e.generation}
	if e.equilibrated {
		q.done = true
		return q
	}
	e.logger.Info("Equilibration started")
	return q
}

// Batch runs up to EquilibrationBatchSize warm-up steps and returns progress
// in [0,100]. Progress jumps to 100 on convergence.
func (q *Equilibration) Batch() (progress float64, done bool, err error) {
	e := q.engine
	if q.generation != e.generation {
		return q.Progress(), q.done, ErrStaleEquilibration
	}
	if q.done {
		return q.Progress(), true, nil
	}

	for i := 0; i < EquilibrationBatchSize && q.steps < EquilibrationMaxSteps; i++ {
		prev := e.growth.State()
		e.growth.WarmUpStep()
		cur := e.growth.State()
		q.steps++

		capitalChange := math.Abs((cur.CapitalPerWorker - prev.CapitalPerWorker) / prev.CapitalPerWorker)
		gdpChange := math.Abs((cur.GDPPerCapita - prev.GDPPerCapita) / prev.GDPPerCapita)
		if capitalChange < EquilibrationTolerance && gdpChange < EquilibrationTolerance {
			q.converged = true
			break
		}
	}

	if q.converged || q.steps >= EquilibrationMaxSteps {
		q.finish()
	}
	return q.Progress(), q.done, nil
}

func (q *Equilibration) finish() {
	e := q.engine
	q.done = true
	e.growth.ResetGrowthMemo()
	e.equilibrated = true

	e.logger.WithFields(map[string]interface{}{
		"steps":     q.steps,
		"converged": q.converged,
	}).Info("Equilibration finished")
	if e.metrics != nil {
		e.metrics.RecordEquilibration(q.steps, q.converged)
	}
}

// Progress returns completion as a percentage.
func (q *Equilibration) Progress() float64 {
	if q.converged || (q.done && q.steps == 0) {
		return 100
	}
	return float64(min(q.steps, EquilibrationMaxSteps)) / EquilibrationMaxSteps * 100
}

// Steps returns the number of warm-up steps taken.
func (q *Equilibration) Steps() int {
	return q.steps
}

// Converged reports whether the tolerance was reached before the step cap.
func (q *Equilibration) Converged() bool {
	return q.converged
}

// Done reports whether the warm-up has finished.
func (q *Equilibration) Done() bool {
	return q.done
}

// Equilibrate runs a full warm-up synchronously, reporting progress after
// each batch. It stops early if ctx is cancelled.
func (e *Engine) Equilibrate(ctx context.Context, onProgress func(float64)) error {
	q := e.BeginEquilibration()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		progress, done, err := q.Batch()
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
