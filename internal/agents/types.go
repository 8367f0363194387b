// Package agents provides the consumer and producer data models and the
// shared spatial lifecycle state both variants move through.
package agents

import (
	"github.com/Bonorinoa/agora/internal/economy"
	"github.com/Bonorinoa/agora/internal/world"
)

// Expectation is the three-valued backward-looking signal agents revise each
// tick by comparing a realized outcome to a population mean.
type Expectation uint8

const (
	ExpectDown Expectation = iota
	ExpectStay
	ExpectUp
)

// String returns the bucket name used in telemetry and API output.
func (e Expectation) String() string {
	switch e {
	case ExpectDown:
		return "down"
	case ExpectUp:
		return "up"
	default:
		return "stay"
	}
}

// LifecycleState is the movement phase an agent is in. The cycle is
// moving_to_market → at_market → returning → at_origin → moving_to_market.
type LifecycleState uint8

const (
	StateMovingToMarket LifecycleState = iota
	StateAtMarket
	StateReturning
	StateAtOrigin
)

func (s LifecycleState) String() string {
	switch s {
	case StateMovingToMarket:
		return "moving_to_market"
	case StateAtMarket:
		return "at_market"
	case StateReturning:
		return "returning"
	default:
		return "at_origin"
	}
}

// Mobility is the spatial capability shared by both agent variants: where the
// agent is, where it lives, which market it is committed to, and how far
// through the movement cycle it is.
type Mobility struct {
	Position world.Point      `json:"position"`
	Origin   world.Point      `json:"origin"`
	Target   economy.MarketID `json:"target_market"`
	State    LifecycleState   `json:"lifecycle_state"`

	// Dwell counts ticks spent in the current at_market or at_origin state.
	// It is zero on the arrival tick, which is when transactions happen.
	Dwell int `json:"dwell"`
}

// Mobile exposes the shared spatial state; both variants implement Spatial.
func (m *Mobility) Mobile() *Mobility { return m }

// Spatial is the capability interface the movement engine iterates over.
type Spatial interface {
	Mobile() *Mobility
}

// Consumer buys the good at its target market, constrained by wealth and a
// debt ceiling. Wealth and debt are mutually exclusive: at most one is
// nonzero at any tick.
type Consumer struct {
	ID uint64 `json:"id"`
	Mobility

	Wealth float64 `json:"wealth"`
	Debt   float64 `json:"debt"`
	Wage   float64 `json:"wage"`

	Demand      float64 `json:"demand"`
	UnmetDemand float64 `json:"unmet_demand"`

	PriceExpectation Expectation `json:"price_expectation"`
	LastPricePaid    float64     `json:"last_price_paid"`
}

// Producer stocks its target market with output, constrained by the market's
// capacity ceiling.
type Producer struct {
	ID uint64 `json:"id"`
	Mobility

	Output      float64 `json:"output"`
	Capacity    float64 `json:"capacity"`
	Costs       float64 `json:"costs"`
	UnmetSupply float64 `json:"unmet_supply"`

	DemandExpectation  Expectation `json:"demand_expectation"`
	LastDemandSupplied float64     `json:"last_demand_supplied"`
}
