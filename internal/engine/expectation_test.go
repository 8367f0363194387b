package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/economy"
	"github.com/Bonorinoa/agora/internal/world"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		realized float64
		mean     float64
		want     agents.Expectation
	}{
		{"below mean expects up", 8, 10, agents.ExpectUp},
		{"on mean expects stay", 10, 10, agents.ExpectStay},
		{"above mean expects down", 12, 10, agents.ExpectDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.realized, tt.mean))
		})
	}
}

func TestReviseExpectations(t *testing.T) {
	// Two markets, mean price 10.
	cheap := economy.NewMarket(1, world.Point{X: 0}, 8, 150)
	dear := economy.NewMarket(2, world.Point{X: 5}, 12, 150)

	paidLow := newTestConsumer(1, cheap)
	paidLow.LastPricePaid = 8
	paidHigh := newTestConsumer(2, dear)
	paidHigh.LastPricePaid = 12

	// Mean consumer demand is 10 (both at base intention).
	underSupplied := newTestProducer(1, cheap)
	underSupplied.LastDemandSupplied = 6
	overSupplied := newTestProducer(2, dear)
	overSupplied.LastDemandSupplied = 14

	s := NewSimulation(
		[]*economy.Market{cheap, dear},
		[]*agents.Consumer{paidLow, paidHigh},
		[]*agents.Producer{underSupplied, overSupplied},
		DefaultParams(),
	)

	s.reviseExpectations()

	assert.Equal(t, agents.ExpectUp, paidLow.PriceExpectation)
	assert.Equal(t, agents.ExpectDown, paidHigh.PriceExpectation)
	assert.Equal(t, agents.ExpectUp, underSupplied.DemandExpectation)
	assert.Equal(t, agents.ExpectDown, overSupplied.DemandExpectation)
}
