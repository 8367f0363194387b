// Package persistence provides SQLite-based run recording: one row per run,
// the per-tick metrics stream, and the final agent snapshots. External
// analysis reads the database; the engine never does.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Bonorinoa/agora/internal/config"
	"github.com/Bonorinoa/agora/internal/engine"
	"github.com/Bonorinoa/agora/internal/telemetry"
)

// DB wraps a SQLite connection for run recording.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		final_tick INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS tick_metrics (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		mean_price REAL NOT NULL,
		min_price REAL NOT NULL,
		max_price REAL NOT NULL,
		total_quantity REAL NOT NULL,
		aggregate_demand REAL NOT NULL,
		aggregate_supply REAL NOT NULL,
		total_wealth REAL NOT NULL,
		total_debt REAL NOT NULL,
		mean_demand REAL NOT NULL,
		mean_output REAL NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE TABLE IF NOT EXISTS consumers (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		origin_x INTEGER NOT NULL,
		origin_y INTEGER NOT NULL,
		wealth REAL NOT NULL,
		debt REAL NOT NULL,
		wage REAL NOT NULL,
		demand REAL NOT NULL,
		unmet_demand REAL NOT NULL,
		price_expectation TEXT NOT NULL,
		last_price_paid REAL NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS producers (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		origin_x INTEGER NOT NULL,
		origin_y INTEGER NOT NULL,
		output REAL NOT NULL,
		costs REAL NOT NULL,
		unmet_supply REAL NOT NULL,
		demand_expectation TEXT NOT NULL,
		last_demand_supplied REAL NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_tick_metrics_run ON tick_metrics(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartRun registers a new run and returns its identifier.
func (db *DB) StartRun(cfg *config.Config) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	id := uuid.NewString()
	_, err = db.conn.Exec(
		"INSERT INTO runs (id, seed, config_json, started_at) VALUES (?, ?, ?, ?)",
		id, cfg.Seed, string(cfgJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// RecordTick appends one metrics row for a run.
func (db *DB) RecordTick(runID string, stats telemetry.TickStats) error {
	_, err := db.conn.Exec(`INSERT INTO tick_metrics
		(run_id, tick, mean_price, min_price, max_price, total_quantity,
		 aggregate_demand, aggregate_supply, total_wealth, total_debt,
		 mean_demand, mean_output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, stats.Tick, stats.MeanPrice, stats.MinPrice, stats.MaxPrice,
		stats.TotalQuantity, stats.AggregateDemand, stats.AggregateSupply,
		stats.TotalWealth, stats.TotalDebt, stats.MeanDemand, stats.MeanOutput,
	)
	if err != nil {
		return fmt.Errorf("insert tick %d: %w", stats.Tick, err)
	}
	return nil
}

// SaveFinalState writes the closing agent snapshots for a run.
func (db *DB) SaveFinalState(runID string, sim *engine.Simulation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range sim.Consumers {
		_, err := tx.Exec(`INSERT INTO consumers
			(run_id, id, origin_x, origin_y, wealth, debt, wage, demand,
			 unmet_demand, price_expectation, last_price_paid)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, c.ID, c.Origin.X, c.Origin.Y, c.Wealth, c.Debt, c.Wage,
			c.Demand, c.UnmetDemand, c.PriceExpectation.String(), c.LastPricePaid,
		)
		if err != nil {
			return fmt.Errorf("insert consumer %d: %w", c.ID, err)
		}
	}

	for _, p := range sim.Producers {
		_, err := tx.Exec(`INSERT INTO producers
			(run_id, id, origin_x, origin_y, output, costs, unmet_supply,
			 demand_expectation, last_demand_supplied)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, p.ID, p.Origin.X, p.Origin.Y, p.Output, p.Costs,
			p.UnmetSupply, p.DemandExpectation.String(), p.LastDemandSupplied,
		)
		if err != nil {
			return fmt.Errorf("insert producer %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// FinishRun marks a run complete.
func (db *DB) FinishRun(runID string, finalTick uint64) error {
	_, err := db.conn.Exec(
		"UPDATE runs SET finished_at = ?, final_tick = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), finalTick, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	slog.Info("run recorded", "run_id", runID, "final_tick", finalTick)
	return nil
}

// TickMetric is a stored metrics row.
type TickMetric struct {
	Tick            uint64  `db:"tick"`
	MeanPrice       float64 `db:"mean_price"`
	AggregateDemand float64 `db:"aggregate_demand"`
	AggregateSupply float64 `db:"aggregate_supply"`
	TotalWealth     float64 `db:"total_wealth"`
	TotalDebt       float64 `db:"total_debt"`
}

// LoadTickMetrics returns the stored metrics stream for a run in tick order.
func (db *DB) LoadTickMetrics(runID string) ([]TickMetric, error) {
	var rows []TickMetric
	err := db.conn.Select(&rows, `SELECT tick, mean_price, aggregate_demand,
		aggregate_supply, total_wealth, total_debt
		FROM tick_metrics WHERE run_id = ? ORDER BY tick`, runID)
	return rows, err
}
