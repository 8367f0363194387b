// Movement — the four-state lifecycle every agent cycles through. The three
// phases below run at different points of the tick so that arrival, trade,
// and price adjustment interleave in the documented order.
package engine

import "github.com/Bonorinoa/agora/internal/agents"

// advanceOutbound steps agents walking to their market and ages the
// at-market dwell. An agent arriving this tick has Dwell == 0 and transacts
// in the decision phases that follow.
func (s *Simulation) advanceOutbound() {
	for _, a := range s.roster {
		mob := a.Mobile()
		switch mob.State {
		case agents.StateMovingToMarket:
			target := s.MarketIndex[mob.Target]
			if target == nil {
				continue
			}
			if mob.Position != target.Position {
				mob.Position = mob.Position.StepToward(target.Position)
			}
			if mob.Position == target.Position {
				mob.State = agents.StateAtMarket
				mob.Dwell = 0
			}
		case agents.StateAtMarket:
			mob.Dwell++
			if mob.Dwell >= s.Params.MarketDwell {
				mob.State = agents.StateReturning
				mob.Dwell = 0
			}
		}
	}
}

// advanceReturn steps homebound agents. Home means within one distance unit
// of the origin cell.
func (s *Simulation) advanceReturn() {
	for _, a := range s.roster {
		mob := a.Mobile()
		if mob.State != agents.StateReturning {
			continue
		}
		if mob.Position.DistanceTo(mob.Origin) > 1 {
			mob.Position = mob.Position.StepToward(mob.Origin)
		}
		if mob.Position.DistanceTo(mob.Origin) <= 1 {
			mob.State = agents.StateAtOrigin
			mob.Dwell = 0
		}
	}
}

// advanceDeparture ages the at-origin dwell and sends rested agents back
// out, re-running target selection first.
func (s *Simulation) advanceDeparture(tick uint64) {
	for _, c := range s.Consumers {
		if c.State != agents.StateAtOrigin {
			continue
		}
		c.Dwell++
		if c.Dwell >= s.Params.OriginDwell {
			s.selectConsumerTarget(c, tick)
			c.State = agents.StateMovingToMarket
			c.Dwell = 0
		}
	}
	for _, p := range s.Producers {
		if p.State != agents.StateAtOrigin {
			continue
		}
		p.Dwell++
		if p.Dwell >= s.Params.OriginDwell {
			s.selectProducerTarget(p, tick)
			p.State = agents.StateMovingToMarket
			p.Dwell = 0
		}
	}
}
