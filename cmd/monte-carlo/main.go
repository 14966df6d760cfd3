// Package main runs Monte-Carlo replications of the simulator and prints a
// summary. It exits non-zero if the run fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MRamiBalles/MacroEconSim/server/internal/engine"
	"github.com/MRamiBalles/MacroEconSim/server/internal/events"
	"github.com/MRamiBalles/MacroEconSim/server/internal/montecarlo"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/config"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/logger"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/metrics"
	"github.com/MRamiBalles/MacroEconSim/server/internal/platform/optimization"
	"github.com/MRamiBalles/MacroEconSim/server/internal/random"
)

func main() {
	cfg, err := config.ParseConfig(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
	if err != nil {
		config.Exitf("monte-carlo: %v", err)
	}
	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			config.Exitf("monte-carlo: %v", err)
		}
	}

	catalog := events.DefaultCatalog()
	if cfg.CatalogPath != "" {
		if catalog, err = events.LoadCatalogFile(cfg.CatalogPath); err != nil {
			config.Exitf("monte-carlo: %v", err)
		}
	}
	scenario, err := config.LoadScenarioFile(cfg.ScenarioPath)
	if err != nil {
		config.Exitf("monte-carlo: %v", err)
	}
	pool, err := optimization.ForProfile(cfg.Profile)
	if err != nil {
		config.Exitf("monte-carlo: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("MACROECONOMIC SIMULATOR - MONTE-CARLO")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Scenario %s, %d replications x %d years, base seed %d\n", scenario.Name, cfg.Replications, cfg.Years, seed)

	summary, err := montecarlo.Run(ctx, montecarlo.Config{
		Replications: cfg.Replications,
		Years:        cfg.Years,
		BaseSeed:     seed,
		Workers:      pool.Workers,
		JobBuffer:    pool.JobBuffer,
		Growth:       scenario.Growth,
		Catalog:      catalog,
		Setup:        func(e *engine.Engine) { scenario.ApplyPolicy(e) },
		Logger:       appLogger,
		Metrics:      metrics.Get(),
	})
	if err != nil {
		config.Exitf("monte-carlo: %v", err)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("%-16s %12s %12s %12s %12s\n", "", "mean", "std", "min", "max")
	printStat("GDP/capita", summary.GDPPerCapita)
	printStat("Inflation %", summary.Inflation)
	printStat("Unemployment %", summary.Unemployment)
	printStat("Debt/GDP", summary.DebtToGDP)
	printStat("Events fired", summary.EventsFired)

	fmt.Println("\nEvents by frequency:")
	for _, name := range montecarlo.EventNames(summary.EventCounts) {
		fmt.Printf("  %-24s %d\n", name, summary.EventCounts[name])
	}

	rec := optimization.Analyze(metrics.Get().Snapshot())
	for _, note := range rec.Notes {
		appLogger.Warn(note)
	}

	if cfg.LogLevel == "debug" {
		_ = metrics.Get().WritePrometheus(os.Stderr)
	}
}

func printStat(label string, s montecarlo.Stat) {
	fmt.Printf("%-16s %12.4f %12.4f %12.4f %12.4f\n", label, s.Mean, s.StdDev, s.Min, s.Max)
}
