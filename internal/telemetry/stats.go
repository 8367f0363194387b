// Package telemetry collects per-tick metrics from the simulation for the
// plotting and experiment collaborators. Collection is read-only: the
// collector never mutates simulation state.
package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/engine"
)

// TickStats is one row of the per-tick metrics stream.
type TickStats struct {
	Tick uint64 `csv:"tick"`

	// Market prices and stock.
	MeanPrice     float64 `csv:"mean_price"`
	MinPrice      float64 `csv:"min_price"`
	MaxPrice      float64 `csv:"max_price"`
	PriceStdDev   float64 `csv:"price_stddev"`
	TotalQuantity float64 `csv:"total_quantity"`

	// Aggregates.
	AggregateDemand float64 `csv:"aggregate_demand"`
	AggregateSupply float64 `csv:"aggregate_supply"`

	// Consumer economics.
	TotalWealth float64 `csv:"total_wealth"`
	TotalDebt   float64 `csv:"total_debt"`
	MeanDemand  float64 `csv:"mean_demand"`
	UnmetDemand float64 `csv:"unmet_demand"`

	// Producer economics.
	MeanOutput  float64 `csv:"mean_output"`
	MeanCosts   float64 `csv:"mean_costs"`
	UnmetSupply float64 `csv:"unmet_supply"`

	// Price-phase bookkeeping: mean of the per-market excess-supply ratio.
	// Computed by the engine but never applied to the price cut.
	MeanExcessSupplyRatio float64 `csv:"mean_excess_supply_ratio"`

	// Expectation buckets.
	ConsumersUp   int `csv:"consumers_up"`
	ConsumersStay int `csv:"consumers_stay"`
	ConsumersDown int `csv:"consumers_down"`
	ProducersUp   int `csv:"producers_up"`
	ProducersStay int `csv:"producers_stay"`
	ProducersDown int `csv:"producers_down"`
}

// Collect snapshots the simulation into a TickStats row.
func Collect(s *engine.Simulation) TickStats {
	stats := TickStats{
		Tick:            s.CurrentTick(),
		AggregateDemand: s.AD,
		AggregateSupply: s.AS,
	}

	if n := len(s.Markets); n > 0 {
		prices := make([]float64, n)
		ratios := make([]float64, n)
		for i, m := range s.Markets {
			prices[i] = m.UnitPrice
			ratios[i] = m.ExcessSupplyRatio
			stats.TotalQuantity += m.Quantity
		}
		stats.MeanPrice = stat.Mean(prices, nil)
		stats.MinPrice = floats.Min(prices)
		stats.MaxPrice = floats.Max(prices)
		stats.PriceStdDev = stat.StdDev(prices, nil)
		stats.MeanExcessSupplyRatio = stat.Mean(ratios, nil)
	}

	if n := len(s.Consumers); n > 0 {
		demands := make([]float64, n)
		for i, c := range s.Consumers {
			demands[i] = c.Demand
			stats.TotalWealth += c.Wealth
			stats.TotalDebt += c.Debt
			stats.UnmetDemand += c.UnmetDemand
			switch c.PriceExpectation {
			case agents.ExpectUp:
				stats.ConsumersUp++
			case agents.ExpectDown:
				stats.ConsumersDown++
			default:
				stats.ConsumersStay++
			}
		}
		stats.MeanDemand = stat.Mean(demands, nil)
	}

	if n := len(s.Producers); n > 0 {
		outputs := make([]float64, n)
		costs := make([]float64, n)
		for i, p := range s.Producers {
			outputs[i] = p.Output
			costs[i] = p.Costs
			stats.UnmetSupply += p.UnmetSupply
			switch p.DemandExpectation {
			case agents.ExpectUp:
				stats.ProducersUp++
			case agents.ExpectDown:
				stats.ProducersDown++
			default:
				stats.ProducersStay++
			}
		}
		stats.MeanOutput = stat.Mean(outputs, nil)
		stats.MeanCosts = stat.Mean(costs, nil)
	}

	return stats
}
