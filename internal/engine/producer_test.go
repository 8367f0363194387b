package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/economy"
	"github.com/Bonorinoa/agora/internal/world"
)

func TestProduceCommit(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	p := newTestProducer(1, m)
	s := NewSimulation([]*economy.Market{m}, nil, []*agents.Producer{p}, DefaultParams())

	s.produce()

	assert.Equal(t, 10.0, m.Quantity)
	assert.Equal(t, 10.0, p.LastDemandSupplied)
	assert.Equal(t, 100.0, p.Costs) // 10 units × price 10
	assert.Zero(t, p.UnmetSupply)
	assert.Equal(t, 10.0, s.AS)
}

func TestProduceClippedAtCapacity(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	m.Quantity = 140
	p := newTestProducer(1, m)
	p.Costs = 70
	p.LastDemandSupplied = 7

	params := DefaultParams()
	params.BaseIntention = 20 // intention revision lands on 20
	s := NewSimulation([]*economy.Market{m}, nil, []*agents.Producer{p}, params)

	s.produce()

	assert.Equal(t, 150.0, m.Quantity, "commit fills exactly to capacity")
	assert.Equal(t, 10.0, p.UnmetSupply, "shortfall carries forward")
	assert.Equal(t, 70.0, p.Costs, "costs unchanged on a clipped commit")
	assert.Equal(t, 7.0, p.LastDemandSupplied, "last supplied unchanged on a clipped commit")
	assert.Equal(t, 20.0, s.AS, "AS measures intended supply, not realized")
}

func TestProduceFirstMoverPriority(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	m.Quantity = 145
	p1 := newTestProducer(1, m)
	p2 := newTestProducer(2, m)
	s := NewSimulation([]*economy.Market{m}, nil, []*agents.Producer{p1, p2}, DefaultParams())

	s.produce()

	// Creation order decides who gets the remaining capacity.
	assert.Equal(t, 5.0, p1.UnmetSupply)
	assert.Equal(t, 10.0, p2.UnmetSupply)
	assert.Equal(t, 150.0, m.Quantity)
}

func TestProduceOnlyOnArrivalTick(t *testing.T) {
	m := newTestMarket(1, world.Point{})
	p := newTestProducer(1, m)
	p.Dwell = 2
	s := NewSimulation([]*economy.Market{m}, nil, []*agents.Producer{p}, DefaultParams())

	s.produce()

	assert.Zero(t, m.Quantity)
	assert.Zero(t, s.AS)
}

func TestReviseOutputFractions(t *testing.T) {
	tests := []struct {
		name        string
		expectation agents.Expectation
		want        float64
	}{
		{"down", agents.ExpectDown, 10 - 0.3*4},
		{"stay", agents.ExpectStay, 10 - 0.5*4},
		{"up", agents.ExpectUp, 10 - 0.7*4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Simulation{Params: DefaultParams()}
			p := &agents.Producer{Output: 10, UnmetSupply: 4, DemandExpectation: tt.expectation}
			s.reviseOutput(p)
			assert.InDelta(t, tt.want, p.Output, 1e-9)
		})
	}
}

func TestReviseOutputBounds(t *testing.T) {
	s := &Simulation{Params: DefaultParams()}

	// Heavy unmet supply floors at the output floor.
	p := &agents.Producer{Output: 10, UnmetSupply: 100, DemandExpectation: agents.ExpectUp}
	s.reviseOutput(p)
	assert.Equal(t, 5.0, p.Output)

	// No unmet supply resets to the base intention.
	p = &agents.Producer{Output: 3}
	s.reviseOutput(p)
	assert.Equal(t, 10.0, p.Output)
}
