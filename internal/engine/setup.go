// Setup — builds a runnable simulation from configuration: market
// placement, population spawning, and parameter wiring.
package engine

import (
	"github.com/Bonorinoa/agora/internal/agents"
	"github.com/Bonorinoa/agora/internal/config"
	"github.com/Bonorinoa/agora/internal/economy"
	"github.com/Bonorinoa/agora/internal/world"
)

// FromConfig creates a fully populated simulation. Deterministic per seed:
// placement, origins, and all sampled attributes come from seeded sources.
func FromConfig(cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := world.NewGrid(cfg.Grid.HalfExtent)

	cells := world.PlaceMarkets(grid, cfg.Grid.Regions, cfg.Markets.PerRegion, cfg.Seed)
	markets := make([]*economy.Market, 0, len(cells))
	for i, cell := range cells {
		markets = append(markets, economy.NewMarket(
			economy.MarketID(i+1), cell, cfg.Markets.InitialPrice, cfg.Markets.Capacity))
	}

	spawnCfg := agents.SpawnConfig{
		WealthMean:       cfg.Population.WealthMean,
		WealthStdDev:     cfg.Population.WealthStdDev,
		WageMean:         cfg.Population.WageMean,
		WageStdDev:       cfg.Population.WageStdDev,
		BaseIntention:    cfg.Behavior.BaseIntention,
		ProducerCapacity: cfg.Population.ProducerCapacity,
	}
	spawner := agents.NewSpawner(cfg.Seed)

	var consumers []*agents.Consumer
	for h := 0; h < cfg.Population.Households; h++ {
		origin := spawner.RandomCell(grid)
		consumers = append(consumers, spawner.SpawnHousehold(origin, cfg.Population.ConsumersPerHousehold, spawnCfg)...)
	}

	var producers []*agents.Producer
	for f := 0; f < cfg.Population.Factories; f++ {
		origin := spawner.RandomCell(grid)
		producers = append(producers, spawner.SpawnFactory(origin, cfg.Population.ProducersPerFactory, spawnCfg)...)
	}

	params := Params{
		SearchRadius:        cfg.Markets.SearchRadius,
		MarketDwell:         cfg.Movement.MarketDwell,
		OriginDwell:         cfg.Movement.OriginDwell,
		IncomePeriod:        cfg.Clock.IncomePeriod,
		BaseIntention:       cfg.Behavior.BaseIntention,
		OutputFloor:         cfg.Behavior.OutputFloor,
		FracDown:            cfg.Behavior.FractionDown,
		FracStay:            cfg.Behavior.FractionStay,
		FracUp:              cfg.Behavior.FractionUp,
		PriceRaiseCap:       cfg.Price.RaiseCap,
		PriceCut:            cfg.Price.Cut,
		DebtCeilingMultiple: cfg.Behavior.DebtCeilingMultiple,
		SwitchAfterTick:     cfg.Behavior.SwitchAfterTick,
	}

	return NewSimulation(markets, consumers, producers, params), nil
}
