// Price adjustment — each market reacts to the demand/supply imbalance of
// the agents physically standing on its cell.
package engine

// adjustPrices updates every market's unit price from local imbalance.
// Excess demand raises the price by up to PriceRaiseCap, scaled by the
// unmet-demand ratio. Excess supply cuts the price by a flat PriceCut; the
// excess-supply ratio is recorded on the market but deliberately does not
// scale the cut.
func (s *Simulation) adjustPrices() {
	for _, m := range s.Markets {
		var demand, supply, unmetDemand, unmetSupply float64
		for _, c := range s.Consumers {
			if c.Position == m.Position {
				demand += c.Demand
				unmetDemand += c.UnmetDemand
			}
		}
		for _, p := range s.Producers {
			if p.Position == m.Position {
				supply += p.Output
				unmetSupply += p.UnmetSupply
			}
		}

		// Floors guard the ratios against empty cells.
		if demand < 1 {
			demand = 1
		}
		if supply < 1 {
			supply = 1
		}

		if demand > supply {
			ratio := unmetDemand / demand
			if ratio > 1 {
				ratio = 1
			}
			m.ExcessSupplyRatio = 0
			m.UnitPrice *= 1 + s.Params.PriceRaiseCap*ratio
		} else {
			m.ExcessSupplyRatio = unmetSupply / supply
			m.UnitPrice *= 1 - s.Params.PriceCut
		}
	}
}
