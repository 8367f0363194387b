// Simulation ties the grid, markets, and agent population together and runs
// the per-tick phases in a fixed order.
package engine

import (
	"log/slog"

	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/economy"
)

// Params holds the behavioral tunables of the engine.
type Params struct {
	SearchRadius float64 // market search radius around an agent

	MarketDwell int // ticks spent at a market before heading home
	OriginDwell int // ticks spent at home before setting out again

	IncomePeriod uint64 // ticks between wage payments

	BaseIntention float64 // demand/output reset value and demand ceiling
	OutputFloor   float64 // minimum producer output after feedback

	// Expectation-keyed fractions applied to unmet feedback.
	FracDown float64
	FracStay float64
	FracUp   float64

	PriceRaiseCap float64 // max fractional price increase per tick
	PriceCut      float64 // flat fractional price decrease per tick

	DebtCeilingMultiple float64 // consumers may trade while debt < multiple × wealth

	// SwitchAfterTick is when agents start abandoning their nearest market
	// for a better one (cheaper for consumers, less saturated for producers).
	SwitchAfterTick uint64
}

// DefaultParams returns the stock parameter set.
func DefaultParams() Params {
	return Params{
		SearchRadius:        10,
		MarketDwell:         5,
		OriginDwell:         10,
		IncomePeriod:        24,
		BaseIntention:       10,
		OutputFloor:         5,
		FracDown:            0.3,
		FracStay:            0.5,
		FracUp:              0.7,
		PriceRaiseCap:       0.02,
		PriceCut:            0.05,
		DebtCeilingMultiple: 2,
		SwitchAfterTick:     24,
	}
}

// fraction returns the feedback fraction for an expectation bucket.
func (p Params) fraction(e agents.Expectation) float64 {
	switch e {
	case agents.ExpectDown:
		return p.FracDown
	case agents.ExpectUp:
		return p.FracUp
	default:
		return p.FracStay
	}
}

// Simulation holds the complete economy state. Consumers and producers are
// kept in creation order; that order is the documented first-mover policy
// wherever shared market state is mutated.
type Simulation struct {
	Markets     []*economy.Market
	MarketIndex map[economy.MarketID]*economy.Market

	Consumers []*agents.Consumer
	Producers []*agents.Producer

	// roster holds every agent through the shared spatial capability, in
	// creation order (consumers first), for the movement phases.
	roster []agents.Spatial

	Params Params

	// Aggregate context — reset at setup, accumulated every tick.
	AD float64 // cumulative realized consumption
	AS float64 // cumulative intended supply at transaction attempts

	LastTick uint64
}

// NewSimulation wires a simulation from its components and resets the
// aggregate counters. Every agent gets an initial target before the first
// tick, so targets are never unresolved once any market exists.
func NewSimulation(markets []*economy.Market, consumers []*agents.Consumer, producers []*agents.Producer, params Params) *Simulation {
	index := make(map[economy.MarketID]*economy.Market, len(markets))
	for _, m := range markets {
		index[m.ID] = m
	}

	roster := make([]agents.Spatial, 0, len(consumers)+len(producers))
	for _, c := range consumers {
		roster = append(roster, c)
	}
	for _, p := range producers {
		roster = append(roster, p)
	}

	s := &Simulation{
		Markets:     markets,
		MarketIndex: index,
		Consumers:   consumers,
		Producers:   producers,
		roster:      roster,
		Params:      params,
	}

	for _, c := range s.Consumers {
		s.selectConsumerTarget(c, 0)
	}
	for _, p := range s.Producers {
		s.selectProducerTarget(p, 0)
	}
	return s
}

// CurrentTick returns the most recently processed tick.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// Step advances the simulation by one tick. Phase order is fixed: producers
// must stock markets before consumers draw from the same tick's inventory,
// and prices react to what both did.
func (s *Simulation) Step(tick uint64) {
	s.LastTick = tick

	s.retargetEnRoute(tick)
	s.advanceOutbound()
	s.produce()
	s.consume()
	s.adjustPrices()
	s.advanceReturn()
	s.reviseExpectations()

	if s.Params.IncomePeriod > 0 && tick%s.Params.IncomePeriod == 0 {
		s.distributeIncome()
	}

	s.advanceDeparture(tick)
}

// distributeIncome pays each consumer its wage. Wages retire outstanding
// debt before crediting wealth, keeping wealth and debt mutually exclusive.
func (s *Simulation) distributeIncome() {
	for _, c := range s.Consumers {
		wage := c.Wage
		if c.Debt > 0 {
			if wage >= c.Debt {
				wage -= c.Debt
				c.Debt = 0
			} else {
				c.Debt -= wage
				wage = 0
			}
		}
		c.Wealth += wage
	}
}

// Report logs a periodic summary in the style of a daily ledger.
func (s *Simulation) Report(tick uint64) {
	var totalWealth, totalDebt float64
	for _, c := range s.Consumers {
		totalWealth += c.Wealth
		totalDebt += c.Debt
	}
	var priceSum float64
	for _, m := range s.Markets {
		priceSum += m.UnitPrice
	}
	meanPrice := 0.0
	if len(s.Markets) > 0 {
		meanPrice = priceSum / float64(len(s.Markets))
	}

	slog.Info("ledger",
		"tick", tick,
		"time", SimTime(tick),
		"mean_price", meanPrice,
		"aggregate_demand", s.AD,
		"aggregate_supply", s.AS,
		"total_wealth", totalWealth,
		"total_debt", totalDebt,
	)
}
