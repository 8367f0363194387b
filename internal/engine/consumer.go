// Consumer decisions — revise the demand intention from unmet-demand
// feedback, then buy from the target market on the arrival tick.
package engine

import "github.com/Bonorinoa/agora/internal/agents"

// consume runs the consumer decision rule for every consumer in creation
// order. Earlier consumers get inventory priority at a shared market.
func (s *Simulation) consume() {
	for _, c := range s.Consumers {
		s.reviseDemand(c)

		if c.State != agents.StateAtMarket || c.Dwell >= 1 {
			continue
		}
		market := s.MarketIndex[c.Target]
		if market == nil {
			continue
		}

		price := market.UnitPrice
		if market.Quantity > 0 && c.Debt < s.Params.DebtCeilingMultiple*c.Wealth {
			qty := c.Demand
			if qty > market.Quantity {
				qty = market.Quantity
			}
			market.Consume(qty)
			c.Wealth -= qty * price
			if c.Wealth < 0 {
				// Overspend becomes debt; wealth never goes negative.
				c.Debt += -c.Wealth
				c.Wealth = 0
			}
			c.LastPricePaid = price
			c.UnmetDemand = 0
			s.AD += qty
		} else {
			// Refused outright: empty market or debt ceiling. The unmet
			// amount carries forward and half the debt is forgiven.
			c.UnmetDemand += c.Demand
			c.Debt *= 0.5
		}
	}
}

// reviseDemand applies the unmet-demand feedback. While unmet demand is
// outstanding, demand shrinks each tick by an expectation-keyed fraction of
// it; once a purchase clears, demand resets to the base intention. Demand
// stays within [0, BaseIntention].
func (s *Simulation) reviseDemand(c *agents.Consumer) {
	if c.UnmetDemand > 0 {
		c.Demand -= s.Params.fraction(c.PriceExpectation) * c.UnmetDemand
		if c.Demand < 0 {
			c.Demand = 0
		}
		if c.Demand > s.Params.BaseIntention {
			c.Demand = s.Params.BaseIntention
		}
		return
	}
	c.Demand = s.Params.BaseIntention
}
