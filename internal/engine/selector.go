// Target market selection — proximity first, then price or saturation
// signals once the market has had time to differentiate.
package engine

import (
	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/economy"
	"github.com/Bonorinoa/agora/internal/world"
)

// retargetEnRoute reruns selection for agents still walking to a market.
// Agents dwelling at a market or walking home keep their committed target;
// re-targeting mid-visit would detach the transaction from the arrival.
func (s *Simulation) retargetEnRoute(tick uint64) {
	for _, c := range s.Consumers {
		if c.State == agents.StateMovingToMarket {
			s.selectConsumerTarget(c, tick)
		}
	}
	for _, p := range s.Producers {
		if p.State == agents.StateMovingToMarket {
			s.selectProducerTarget(p, tick)
		}
	}
}

// marketsWithin returns the markets inside the search radius of a point, in
// market order (placement order, which is stable per seed).
func (s *Simulation) marketsWithin(p world.Point, radius float64) []*economy.Market {
	var local []*economy.Market
	for _, m := range s.Markets {
		if p.DistanceTo(m.Position) <= radius {
			local = append(local, m)
		}
	}
	return local
}

// nearestMarket returns the closest market on the whole grid, tie-broken by
// coordinate order. Nil only when no market exists at all.
func (s *Simulation) nearestMarket(p world.Point) *economy.Market {
	var best *economy.Market
	bestDist := 0.0
	for _, m := range s.Markets {
		d := p.DistanceTo(m.Position)
		if best == nil || d < bestDist || (d == bestDist && m.Position.Less(best.Position)) {
			best = m
			bestDist = d
		}
	}
	return best
}

// selectConsumerTarget assigns a consumer's target market. Nearest wins
// until SwitchAfterTick; after that an overpriced target is abandoned for
// the cheapest market in radius.
func (s *Simulation) selectConsumerTarget(c *agents.Consumer, tick uint64) {
	local := s.marketsWithin(c.Position, s.Params.SearchRadius)
	if len(local) == 0 {
		if m := s.nearestMarket(c.Position); m != nil {
			c.Target = m.ID
		}
		return
	}

	current := s.MarketIndex[c.Target]
	if current == nil || tick <= s.Params.SwitchAfterTick {
		c.Target = nearestOf(local, c.Position).ID
		return
	}

	var priceSum float64
	for _, m := range local {
		priceSum += m.UnitPrice
	}
	meanPrice := priceSum / float64(len(local))

	if current.UnitPrice > meanPrice {
		cheapest := local[0]
		for _, m := range local[1:] {
			if m.UnitPrice < cheapest.UnitPrice ||
				(m.UnitPrice == cheapest.UnitPrice && m.Position.Less(cheapest.Position)) {
				cheapest = m
			}
		}
		c.Target = cheapest.ID
	}
}

// selectProducerTarget assigns a producer's target market. Nearest wins
// until SwitchAfterTick or until the producer's costs run above the
// population mean; then it looks for a less saturated market in radius.
func (s *Simulation) selectProducerTarget(p *agents.Producer, tick uint64) {
	local := s.marketsWithin(p.Position, s.Params.SearchRadius)
	if len(local) == 0 {
		if m := s.nearestMarket(p.Position); m != nil {
			p.Target = m.ID
		}
		return
	}

	current := s.MarketIndex[p.Target]
	if current == nil {
		p.Target = nearestOf(local, p.Position).ID
		return
	}

	if tick <= s.Params.SwitchAfterTick && p.Costs <= s.meanProducerCosts() {
		p.Target = nearestOf(local, p.Position).ID
		return
	}

	// Seek a market holding less stock than the current target.
	var best *economy.Market
	for _, m := range local {
		if m.Quantity >= current.Quantity {
			continue
		}
		if best == nil || m.Quantity < best.Quantity ||
			(m.Quantity == best.Quantity && m.Position.Less(best.Position)) {
			best = m
		}
	}
	if best != nil {
		p.Target = best.ID
	}
}

// meanProducerCosts returns the mean costs across all producers.
func (s *Simulation) meanProducerCosts() float64 {
	if len(s.Producers) == 0 {
		return 0
	}
	var sum float64
	for _, p := range s.Producers {
		sum += p.Costs
	}
	return sum / float64(len(s.Producers))
}

// nearestOf returns the closest market from a non-empty slice, tie-broken by
// coordinate order.
func nearestOf(markets []*economy.Market, p world.Point) *economy.Market {
	best := markets[0]
	bestDist := p.DistanceTo(best.Position)
	for _, m := range markets[1:] {
		d := p.DistanceTo(m.Position)
		if d < bestDist || (d == bestDist && m.Position.Less(best.Position)) {
			best = m
			bestDist = d
		}
	}
	return best
}
