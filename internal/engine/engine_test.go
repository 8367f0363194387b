package engine

import (
	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/economy"
	"github.com/Bonorinoa/agora/internal/world"
)

// newTestMarket builds a market with the stock price and capacity.
func newTestMarket(id economy.MarketID, pos world.Point) *economy.Market {
	return economy.NewMarket(id, pos, 10, 150)
}

// newTestConsumer builds a consumer standing at its market on the arrival
// tick, ready to transact.
func newTestConsumer(id uint64, target *economy.Market) *agents.Consumer {
	return &agents.Consumer{
		ID: id,
		Mobility: agents.Mobility{
			Position: target.Position,
			Origin:   target.Position,
			Target:   target.ID,
			State:    agents.StateAtMarket,
		},
		Wealth:           500,
		Wage:             300,
		Demand:           10,
		PriceExpectation: agents.ExpectStay,
	}
}

// newTestProducer builds a producer standing at its market on the arrival
// tick, ready to transact.
func newTestProducer(id uint64, target *economy.Market) *agents.Producer {
	return &agents.Producer{
		ID: id,
		Mobility: agents.Mobility{
			Position: target.Position,
			Origin:   target.Position,
			Target:   target.ID,
			State:    agents.StateAtMarket,
		},
		Output:            10,
		Capacity:          150,
		DemandExpectation: agents.ExpectStay,
	}
}
