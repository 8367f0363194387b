// Agent spawning — creates the initial population from a seeded RNG so every
// run is reproducible. Consumers arrive in households and producers in
// factories; each group shares an origin cell.
package agents

import (
	"math/rand"

	"github.com/Bonorinoa/agora/internal/world"
)

// SpawnConfig holds the sampling parameters for the initial population.
type SpawnConfig struct {
	WealthMean   float64
	WealthStdDev float64
	WageMean     float64
	WageStdDev   float64

	// BaseIntention is the demand/output every agent starts with.
	BaseIntention float64

	// ProducerCapacity is the per-producer output ceiling.
	ProducerCapacity float64
}

// Spawner creates agents with sequential IDs. Creation order is the
// iteration order used everywhere market state is mutated, so IDs double as
// the reproducibility tie-break.
type Spawner struct {
	rng          *rand.Rand
	nextConsumer uint64
	nextProducer uint64
}

// NewSpawner creates a spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		rng:          rand.New(rand.NewSource(seed + 300)),
		nextConsumer: 1,
		nextProducer: 1,
	}
}

// RandomCell samples a uniform origin cell on the grid.
func (s *Spawner) RandomCell(g *world.Grid) world.Point {
	return world.Point{
		X: s.rng.Intn(g.Width()) - g.Half,
		Y: s.rng.Intn(g.Width()) - g.Half,
	}
}

// SpawnHousehold creates n consumers sharing one origin cell.
func (s *Spawner) SpawnHousehold(origin world.Point, n int, cfg SpawnConfig) []*Consumer {
	consumers := make([]*Consumer, 0, n)
	for i := 0; i < n; i++ {
		c := &Consumer{
			ID: s.nextConsumer,
			Mobility: Mobility{
				Position: origin,
				Origin:   origin,
				State:    StateMovingToMarket,
			},
			Wealth:           s.positiveNormal(cfg.WealthMean, cfg.WealthStdDev),
			Wage:             s.positiveNormal(cfg.WageMean, cfg.WageStdDev),
			Demand:           cfg.BaseIntention,
			PriceExpectation: ExpectStay,
		}
		s.nextConsumer++
		consumers = append(consumers, c)
	}
	return consumers
}

// SpawnFactory creates n producers sharing one origin cell.
func (s *Spawner) SpawnFactory(origin world.Point, n int, cfg SpawnConfig) []*Producer {
	producers := make([]*Producer, 0, n)
	for i := 0; i < n; i++ {
		p := &Producer{
			ID: s.nextProducer,
			Mobility: Mobility{
				Position: origin,
				Origin:   origin,
				State:    StateMovingToMarket,
			},
			Output:            cfg.BaseIntention,
			Capacity:          cfg.ProducerCapacity,
			DemandExpectation: ExpectStay,
		}
		s.nextProducer++
		producers = append(producers, p)
	}
	return producers
}

// positiveNormal samples N(mean, sd) clamped at zero.
func (s *Spawner) positiveNormal(mean, sd float64) float64 {
	v := mean + s.rng.NormFloat64()*sd
	if v < 0 {
		v = 0
	}
	return v
}
