package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/economy"
	"github.com/Bonorinoa/agora/internal/world"
)

func TestPriceIncreaseBound(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	c := newTestConsumer(1, m)
	c.Demand = 10
	c.UnmetDemand = 10 // ratio 1.0 — the cap case
	s := NewSimulation([]*economy.Market{m}, []*agents.Consumer{c}, nil, DefaultParams())

	s.adjustPrices()

	assert.InDelta(t, 10.2, m.UnitPrice, 1e-9, "ratio 1.0 raises by exactly 2%")
}

func TestPriceIncreaseScaledByUnmetRatio(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	c := newTestConsumer(1, m)
	c.Demand = 10
	c.UnmetDemand = 5 // ratio 0.5
	s := NewSimulation([]*economy.Market{m}, []*agents.Consumer{c}, nil, DefaultParams())

	s.adjustPrices()

	assert.InDelta(t, 10.1, m.UnitPrice, 1e-9)
}

func TestPriceIncreaseNeverExceedsCap(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	c := newTestConsumer(1, m)
	c.Demand = 10
	c.UnmetDemand = 40 // accumulated past demand — ratio clamps to 1
	s := NewSimulation([]*economy.Market{m}, []*agents.Consumer{c}, nil, DefaultParams())

	s.adjustPrices()

	assert.InDelta(t, 10.2, m.UnitPrice, 1e-9, "never more than the 2% cap")
}

func TestPriceDecreaseIsFlat(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	p := newTestProducer(1, m)
	p.Output = 20
	p.UnmetSupply = 10
	s := NewSimulation([]*economy.Market{m}, nil, []*agents.Producer{p}, DefaultParams())

	s.adjustPrices()

	// Flat 5% cut regardless of the excess-supply ratio, which is only recorded.
	assert.InDelta(t, 9.5, m.UnitPrice, 1e-9)
	assert.InDelta(t, 0.5, m.ExcessSupplyRatio, 1e-9)
}

func TestPriceEmptyCellFloors(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	s := NewSimulation([]*economy.Market{m}, nil, nil, DefaultParams())

	// Nobody on the cell: demand and supply both floor at 1, so the
	// supply branch runs and the price decays.
	s.adjustPrices()
	assert.InDelta(t, 9.5, m.UnitPrice, 1e-9)
}

func TestPriceStaysPositive(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	s := NewSimulation([]*economy.Market{m}, nil, nil, DefaultParams())

	for i := 0; i < 5040; i++ {
		s.adjustPrices()
		assert.Greater(t, m.UnitPrice, 0.0, "multiplicative decay never reaches zero")
	}
}
