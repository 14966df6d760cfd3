// Package main is the interactive entry point for the macroeconomic simulator.
// It only handles dependency injection and presentation.
// NO simulation logic belongs here.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MRamiBalles/MacroEconSim/server/internal/engine"
	"github.com/MRamiBalles/MacroEconSim/server/internal/events"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/config"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/logger"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/metrics"
	"github.com/MRamiBalles/MacroEconSim/server/internal/random"
)

func main() {
	cfg, err := config.ParseConfig(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
	if err != nil {
		config.Exitf("macro-sim: %v", err)
	}

	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			config.Exitf("macro-sim: %v", err)
		}
	}
	appLogger = appLogger.WithFields(map[string]interface{}{"seed": seed})

	catalog := events.DefaultCatalog()
	if cfg.CatalogPath != "" {
		appLogger.Info("Loading event catalog " + cfg.CatalogPath)
		if catalog, err = events.LoadCatalogFile(cfg.CatalogPath); err != nil {
			config.Exitf("macro-sim: %v", err)
		}
	}

	scenario, err := config.LoadScenarioFile(cfg.ScenarioPath)
	if err != nil {
		config.Exitf("macro-sim: %v", err)
	}

	appLogger.Info("Bootstrapping Engine...")
	eng, err := engine.New(engine.Options{
		Growth:  scenario.Growth,
		Catalog: catalog,
		Source:  random.NewSource(seed),
		Logger:  appLogger,
		Metrics: metrics.Get(),
	})
	if err != nil {
		config.Exitf("macro-sim: %v", err)
	}
	scenario.ApplyPolicy(eng)
	appLogger.Infof("Scenario %q loaded with %d catalog events", scenario.Name, len(eng.Catalog()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		appLogger.Info("Shutting down...")
		cancel()
	}()

	ticker := engine.NewTicker(eng, cfg.TickInterval, appLogger)

	fmt.Printf("Equilibrating economy (%s)...\n", scenario.Name)
	err = ticker.Equilibrate(ctx, cfg.EquilibrationInterval, func(p float64) {
		fmt.Printf("\r  progress %5.1f%%", p)
	})
	fmt.Println()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		config.Exitf("macro-sim: %v", err)
	}

	impacts := make(chan engine.EventImpact, 1)
	eng.Subscribe(engine.ObserverFuncs{
		OnTick: func(r engine.TickReport) {
			printYear(os.Stdout, r.Snapshot)
			if r.Snapshot.Year >= cfg.Years {
				ticker.Stop()
			}
		},
		OnEvent: func(i engine.EventImpact) {
			select {
			case impacts <- i:
			default:
			}
		},
	})

	go resumeLoop(ctx, ticker, impacts, cfg, os.Stdin)

	fmt.Printf("%-6s %12s %12s %10s %9s %9s\n", "Year", "GDP/capita", "Capital", "Growth%", "Infl%", "Unemp%")
	if err := ticker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		config.Exitf("macro-sim: %v", err)
	}

	var final engine.State
	var recent []events.HistoricalEvent
	ticker.Do(func(e *engine.Engine) {
		final = e.State()
		recent = e.RecentEvents(5)
	})
	printSummary(os.Stdout, final, recent)

	if cfg.LogLevel == "debug" {
		_ = metrics.Get().WritePrometheus(os.Stderr)
	}
}

// resumeLoop shows each event and resumes the ticker, either on Enter or
// after the configured pause.
func resumeLoop(ctx context.Context, ticker *engine.Ticker, impacts <-chan engine.EventImpact, cfg config.Config, in io.Reader) {
	lines := make(chan struct{})
	if !cfg.AutoResume {
		go func() {
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				lines <- struct{}{}
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case impact := <-impacts:
			printImpact(os.Stdout, impact)
			if cfg.AutoResume {
				select {
				case <-ctx.Done():
					return
				case <-time.After(cfg.EventPause):
				}
			} else {
				discardPending(lines)
				fmt.Println("  Press Enter to resume...")
				select {
				case <-ctx.Done():
					return
				case <-lines:
				}
			}
			ticker.Resume()
		}
	}
}

// discardPending drops Enter presses that arrived while no event was waiting.
func discardPending(lines <-chan struct{}) {
	for {
		select {
		case <-lines:
		default:
			return
		}
	}
}

func printYear(w io.Writer, s engine.EconomySnapshot) {
	fmt.Fprintf(w, "%-6d %12.2f %12.2f %10.2f %9.2f %9.2f\n",
		s.Year, s.GDPPerCapita, s.Capital, s.GrowthRate, s.Inflation, s.Unemployment)
}

func printImpact(w io.Writer, i engine.EventImpact) {
	fmt.Fprintf(w, "\n*** %s (%s, %d years): %s\n", i.Event.Name, i.Event.Category, i.Event.Duration, i.Event.Description)
	row := func(label string, before, after float64) {
		fmt.Fprintf(w, "  %-14s %12.2f -> %12.2f (%+.2f%%)\n", label, before, after, pctChange(before, after))
	}
	row("GDP/capita", i.Before.GDPPerCapita, i.After.GDPPerCapita)
	row("Capital", i.Before.Capital, i.After.Capital)
	row("Population", i.Before.Population, i.After.Population)
	row("Inflation %", i.Before.Inflation, i.After.Inflation)
	row("Unemployment %", i.Before.Unemployment, i.After.Unemployment)
}

func printSummary(w io.Writer, s engine.State, recent []events.HistoricalEvent) {
	fmt.Fprintln(w, "\n============================================================")
	fmt.Fprintf(w, "Year %d  GDP/capita %.2f  Capital %.2f  Population %.0f\n", s.Year, s.GDPPerCapita, s.CapitalStock, s.Population)
	fmt.Fprintf(w, "Growth %.2f%%  Inflation %.2f%%  Unemployment %.2f%%\n", s.GrowthRate, s.Inflation, s.Unemployment)
	fmt.Fprintln(w, s.EventMessage)
	if len(recent) > 0 {
		fmt.Fprintln(w, "Recent events:")
		for _, ev := range recent {
			fmt.Fprintf(w, "  year %3d  %s\n", ev.Year, ev.Name)
		}
	}
}

func pctChange(before, after float64) float64 {
	if before == 0 {
		return 0
	}
	return (after - before) / before * 100
}
