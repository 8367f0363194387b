// Expectation revision — a backward-looking reversal heuristic. Agents that
// realized an outcome below the population mean expect "up", above it
// "down", on it "stay".
package engine

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Bonorinoa/agora/internal/agents"
)

// reviseExpectations updates every agent's three-valued signal. Consumers
// compare their last price paid to the mean market price; producers compare
// their last supplied quantity to the mean consumer demand.
func (s *Simulation) reviseExpectations() {
	prices := make([]float64, len(s.Markets))
	for i, m := range s.Markets {
		prices[i] = m.UnitPrice
	}
	meanPrice := 0.0
	if len(prices) > 0 {
		meanPrice = stat.Mean(prices, nil)
	}

	demands := make([]float64, len(s.Consumers))
	for i, c := range s.Consumers {
		demands[i] = c.Demand
	}
	meanDemand := 0.0
	if len(demands) > 0 {
		meanDemand = stat.Mean(demands, nil)
	}

	for _, c := range s.Consumers {
		c.PriceExpectation = classify(c.LastPricePaid, meanPrice)
	}
	for _, p := range s.Producers {
		p.DemandExpectation = classify(p.LastDemandSupplied, meanDemand)
	}
}

// classify maps a realized value against a mean to the three-way signal.
func classify(realized, mean float64) agents.Expectation {
	switch {
	case realized < mean:
		return agents.ExpectUp
	case realized > mean:
		return agents.ExpectDown
	default:
		return agents.ExpectStay
	}
}
