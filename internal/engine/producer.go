// Producer decisions — revise the output intention from unmet-supply
// feedback, then stock the target market on the arrival tick.
package engine

import "github.com/Bonorinoa/agora/internal/agents"

// produce runs the producer decision rule for every producer in creation
// order. Earlier producers get capacity priority at a shared market.
func (s *Simulation) produce() {
	for _, p := range s.Producers {
		s.reviseOutput(p)

		if p.State != agents.StateAtMarket || p.Dwell >= 1 {
			continue
		}
		market := s.MarketIndex[p.Target]
		if market == nil {
			continue
		}

		// AS measures intended supply, committed or not.
		s.AS += p.Output

		_, shortfall := market.Commit(p.Output)
		if shortfall == 0 {
			p.LastDemandSupplied = p.Output
			p.Costs = p.LastDemandSupplied * market.UnitPrice
			p.UnmetSupply = 0
		} else {
			p.UnmetSupply += shortfall
		}
	}
}

// reviseOutput applies the unmet-supply feedback. While unmet supply is
// outstanding, output shrinks each tick by an expectation-keyed fraction of
// it, floored; once a visit clears, output resets to the base intention.
func (s *Simulation) reviseOutput(p *agents.Producer) {
	if p.UnmetSupply > 0 {
		p.Output -= s.Params.fraction(p.DemandExpectation) * p.UnmetSupply
		if p.Output < s.Params.OutputFloor {
			p.Output = s.Params.OutputFloor
		}
		return
	}
	p.Output = s.Params.BaseIntention
}
