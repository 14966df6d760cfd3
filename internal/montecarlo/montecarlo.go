// Package montecarlo runs many seeded simulations headlessly and summarizes
// where the economy ends up.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MRamiBalles/MacroEconSim/server/internal/domain/economy"
	"github.com/MRamiBalles/MacroEconSim/server/internal/engine"
	"github.com/MRamiBalles/MacroEconSim/server/internal/events"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/logger"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/metrics"
	"github.com/MRamiBalles/MacroEconSim/server/internal/random"
)

// ErrInvalidConfig is returned for a run that cannot start.
var ErrInvalidConfig = errors.New("invalid monte-carlo config")

// Config describes a batch of replications.
type Config struct {
	Replications int
	Years        int
	BaseSeed     int64 // replication i uses BaseSeed+i
	Workers      int   // defaults to 1
	JobBuffer    int
	Growth       economy.GrowthOverrides
	Catalog      []events.EventDefinition
	Setup        func(*engine.Engine) // applied after construction, before equilibration
	Logger       *logger.Logger
	Metrics      *metrics.Collector
}

// Result is the outcome of one replication.
type Result struct {
	Replication        int            `json:"replication"`
	Seed               int64          `json:"seed"`
	Final              engine.State   `json:"final"`
	DebtToGDP          float64        `json:"debt_to_gdp"`
	TaxRate            float64        `json:"tax_rate"`
	InterestRate       float64        `json:"interest_rate"`
	EventsFired        int            `json:"events_fired"`
	EventCounts        map[string]int `json:"event_counts"`
	EquilibrationSteps int            `json:"equilibration_steps"`
	Converged          bool           `json:"converged"`
}

// Stat summarizes one indicator across replications.
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary aggregates every replication.
type Summary struct {
	Results      []Result       `json:"results"`
	GDPPerCapita Stat           `json:"gdp_per_capita"`
	Inflation    Stat           `json:"inflation"`
	Unemployment Stat           `json:"unemployment"`
	DebtToGDP    Stat           `json:"debt_to_gdp"`
	EventsFired  Stat           `json:"events_fired"`
	EventCounts  map[string]int `json:"event_counts"`
}

// Run executes every replication and aggregates the results. Events pause a
// replication as usual; the harness resumes it immediately.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Replications < 1 || cfg.Years < 1 {
		return Summary{}, fmt.Errorf("%w: need at least one replication and one year", ErrInvalidConfig)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	results := make([]Result, cfg.Replications)
	jobs := make(chan int, max(cfg.JobBuffer, 0))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < cfg.Replications; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	done := 0
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				res, err := runReplication(gctx, cfg, i)
				if err != nil {
					return fmt.Errorf("replication %d: %w", i, err)
				}
				results[i] = res

				mu.Lock()
				done++
				n := done
				mu.Unlock()
				cfg.Logger.WithFields(map[string]interface{}{
					"replication": i,
					"completed":   n,
					"gdp_pc":      res.Final.GDPPerCapita,
				}).Debug("Replication finished")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summarize(results)
	cfg.Logger.WithFields(map[string]interface{}{
		"replications": cfg.Replications,
		"years":        cfg.Years,
		"mean_gdp_pc":  summary.GDPPerCapita.Mean,
	}).Info("Monte-Carlo run finished")
	return summary, nil
}

func runReplication(ctx context.Context, cfg Config, i int) (Result, error) {
	seed := cfg.BaseSeed + int64(i)
	e, err := engine.New(engine.Options{
		Growth:  cfg.Growth,
		Catalog: cfg.Catalog,
		Source:  random.NewSource(seed),
		Logger:  cfg.Logger.WithFields(map[string]interface{}{"replication": i}),
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return Result{}, err
	}
	if cfg.Setup != nil {
		cfg.Setup(e)
	}

	q := e.BeginEquilibration()
	for !q.Done() {
		if _, _, err := q.Batch(); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Replication:        i,
		Seed:               seed,
		EventCounts:        make(map[string]int),
		EquilibrationSteps: q.Steps(),
		Converged:          q.Converged(),
	}

	for year := 0; year < cfg.Years; year++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		report, err := e.Tick()
		if err != nil {
			return Result{}, err
		}
		if report.Paused {
			e.Resume()
		}
	}

	for _, ev := range e.EventHistory() {
		res.EventsFired++
		res.EventCounts[ev.Name]++
	}

	d := e.Details()
	res.Final = e.State()
	res.TaxRate = d.FiscalParams.TaxRate
	res.InterestRate = d.MonetaryParams.InterestRate
	if d.Growth.Output > 0 {
		res.DebtToGDP = d.Fiscal.GovernmentDebt / d.Growth.Output
	}
	return res, nil
}

// Summarize aggregates results. It is exported for callers that collect
// replications themselves.
func Summarize(results []Result) Summary {
	s := Summary{
		Results:     results,
		EventCounts: make(map[string]int),
	}
	if len(results) == 0 {
		return s
	}

	gdp := make([]float64, len(results))
	infl := make([]float64, len(results))
	unemp := make([]float64, len(results))
	debt := make([]float64, len(results))
	fired := make([]float64, len(results))
	for i, r := range results {
		gdp[i] = r.Final.GDPPerCapita
		infl[i] = r.Final.Inflation
		unemp[i] = r.Final.Unemployment
		debt[i] = r.DebtToGDP
		fired[i] = float64(r.EventsFired)
		for name, n := range r.EventCounts {
			s.EventCounts[name] += n
		}
	}

	s.GDPPerCapita = describe(gdp)
	s.Inflation = describe(infl)
	s.Unemployment = describe(unemp)
	s.DebtToGDP = describe(debt)
	s.EventsFired = describe(fired)
	return s
}

// EventNames returns the names in counts ordered by frequency, then name.
func EventNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func describe(values []float64) Stat {
	st := Stat{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range values {
		sum += v
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	st.Mean = sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - st.Mean) * (v - st.Mean)
	}
	st.StdDev = math.Sqrt(sq / float64(len(values)))
	return st
}
