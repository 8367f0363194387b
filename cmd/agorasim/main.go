// Command agorasim runs one spatial local-economy simulation to its horizon.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Bonorinoa/agora/internal/api"
	"github.com/Bonorinoa/agora/internal/config"
	"github.com/Bonorinoa/agora/internal/engine"
	"github.com/Bonorinoa/agora/internal/persistence"
	"github.com/Bonorinoa/agora/internal/telemetry"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (empty = embedded defaults)")
		seed       = flag.Int64("seed", 0, "override the config seed (0 = keep config value)")
		csvDir     = flag.String("csv", "", "override output.csv_dir")
		dbPath     = flag.String("db", "", "override output.db_path")
		apiPort    = flag.Int("api", 0, "override output.api_port (0 = keep config value)")
		interval   = flag.Duration("interval", 0, "pacing between ticks (0 = run flat out)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *csvDir != "" {
		cfg.Output.CSVDir = *csvDir
	}
	if *dbPath != "" {
		cfg.Output.DBPath = *dbPath
	}
	if *apiPort != 0 {
		cfg.Output.APIPort = *apiPort
	}

	slog.Info("agora — spatial local-economy simulation",
		"seed", cfg.Seed,
		"markets", cfg.NumMarkets(),
		"consumers", cfg.NumConsumers(),
		"producers", cfg.NumProducers(),
		"horizon", cfg.Clock.Horizon,
	)

	sim, err := engine.FromConfig(cfg)
	if err != nil {
		slog.Error("setup failed", "error", err)
		os.Exit(1)
	}

	// ── Telemetry ─────────────────────────────────────────────────────
	output, err := telemetry.NewOutputManager(cfg.Output.CSVDir)
	if err != nil {
		slog.Error("failed to open telemetry output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to save config snapshot", "error", err)
	}

	// ── Run recorder ──────────────────────────────────────────────────
	var db *persistence.DB
	var runID string
	if cfg.Output.DBPath != "" {
		db, err = persistence.Open(cfg.Output.DBPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		runID, err = db.StartRun(cfg)
		if err != nil {
			slog.Error("failed to register run", "error", err)
			os.Exit(1)
		}
		slog.Info("run recorder enabled", "path", cfg.Output.DBPath, "run_id", runID)
	}

	// ── Clock ─────────────────────────────────────────────────────────
	clock := engine.NewClock(cfg.Clock.Horizon)
	clock.Interval = *interval
	clock.OnTick = func(tick uint64) {
		sim.Step(tick)

		stats := telemetry.Collect(sim)
		if err := output.WriteTick(stats); err != nil {
			slog.Error("telemetry write failed", "tick", tick, "error", err)
		}
		if db != nil {
			if err := db.RecordTick(runID, stats); err != nil {
				slog.Error("tick record failed", "tick", tick, "error", err)
			}
		}
		if cfg.Output.ReportEvery > 0 && tick%cfg.Output.ReportEvery == 0 {
			sim.Report(tick)
		}
	}

	// ── Snapshot API ──────────────────────────────────────────────────
	if cfg.Output.APIPort > 0 {
		server := &api.Server{Sim: sim, Clock: clock, Port: cfg.Output.APIPort}
		server.Start()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping", "signal", sig)
		clock.Stop()
	}()

	start := time.Now()
	clock.Run()

	if db != nil {
		if err := db.SaveFinalState(runID, sim); err != nil {
			slog.Error("final snapshot failed", "error", err)
		}
		if err := db.FinishRun(runID, clock.Tick); err != nil {
			slog.Error("failed to finish run", "error", err)
		}
	}

	final := telemetry.Collect(sim)
	fmt.Printf("\nRun complete: %s ticks in %s.\n",
		humanize.Comma(int64(clock.Tick)), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Mean price %.2f, AD %s, AS %s, total wealth %s.\n",
		final.MeanPrice,
		humanize.CommafWithDigits(final.AggregateDemand, 0),
		humanize.CommafWithDigits(final.AggregateSupply, 0),
		humanize.CommafWithDigits(final.TotalWealth, 0),
	)
}
