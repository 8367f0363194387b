// Command agorasweep is the experiment harness: it repeats headless runs
// across a swept market density and aggregates closing metrics per cell.
// It layers on top of the engine and contains no decision logic.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/Bonorinoa/agora/internal/config"
	"github.com/Bonorinoa/agora/internal/engine"
	"github.com/Bonorinoa/agora/internal/telemetry"
)

// sweepRow is one aggregated cell of the sweep: a markets-per-region value
// summarized across repetitions.
type sweepRow struct {
	MarketsPerRegion int     `csv:"markets_per_region"`
	Runs             int     `csv:"runs"`
	MeanClosingPrice float64 `csv:"mean_closing_price"`
	PriceStdDev      float64 `csv:"closing_price_stddev"`
	MeanTotalWealth  float64 `csv:"mean_total_wealth"`
	MeanTotalDebt    float64 `csv:"mean_total_debt"`
	MeanAD           float64 `csv:"mean_aggregate_demand"`
	MeanAS           float64 `csv:"mean_aggregate_supply"`
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (empty = embedded defaults)")
		runs       = flag.Int("runs", 5, "repetitions per sweep cell")
		minMarkets = flag.Int("min", 1, "lowest markets-per-region value")
		maxMarkets = flag.Int("max", 4, "highest markets-per-region value")
		outPath    = flag.String("out", "sweep.csv", "aggregated output file")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	base, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var rows []sweepRow
	for perRegion := *minMarkets; perRegion <= *maxMarkets; perRegion++ {
		var prices, wealth, debt, ad, as []float64

		for rep := 0; rep < *runs; rep++ {
			cfg := *base
			cfg.Markets.PerRegion = perRegion
			cfg.Seed = base.Seed + int64(rep)

			final, err := runOnce(&cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "run (markets=%d rep=%d): %v\n", perRegion, rep, err)
				os.Exit(1)
			}

			prices = append(prices, final.MeanPrice)
			wealth = append(wealth, final.TotalWealth)
			debt = append(debt, final.TotalDebt)
			ad = append(ad, final.AggregateDemand)
			as = append(as, final.AggregateSupply)
		}

		rows = append(rows, sweepRow{
			MarketsPerRegion: perRegion,
			Runs:             *runs,
			MeanClosingPrice: stat.Mean(prices, nil),
			PriceStdDev:      stat.StdDev(prices, nil),
			MeanTotalWealth:  stat.Mean(wealth, nil),
			MeanTotalDebt:    stat.Mean(debt, nil),
			MeanAD:           stat.Mean(ad, nil),
			MeanAS:           stat.Mean(as, nil),
		})
		fmt.Printf("markets_per_region=%d done (%d runs)\n", perRegion, *runs)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

// runOnce runs a single simulation to its horizon and returns closing stats.
func runOnce(cfg *config.Config) (telemetry.TickStats, error) {
	sim, err := engine.FromConfig(cfg)
	if err != nil {
		return telemetry.TickStats{}, err
	}

	clock := engine.NewClock(cfg.Clock.Horizon)
	clock.OnTick = sim.Step
	clock.Run()

	return telemetry.Collect(sim), nil
}
