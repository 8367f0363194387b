package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bonorinoa/agora/internal/world"
)

var testSpawn = SpawnConfig{
	WealthMean:       500,
	WealthStdDev:     50,
	WageMean:         300,
	WageStdDev:       15,
	BaseIntention:    10,
	ProducerCapacity: 150,
}

func TestSpawnHousehold(t *testing.T) {
	s := NewSpawner(42)
	origin := world.Point{X: 3, Y: -7}
	consumers := s.SpawnHousehold(origin, 5, testSpawn)
	require.Len(t, consumers, 5)

	for i, c := range consumers {
		assert.Equal(t, uint64(i+1), c.ID)
		assert.Equal(t, origin, c.Origin)
		assert.Equal(t, origin, c.Position)
		assert.Equal(t, StateMovingToMarket, c.State)
		assert.Equal(t, 10.0, c.Demand)
		assert.GreaterOrEqual(t, c.Wealth, 0.0)
		assert.GreaterOrEqual(t, c.Wage, 0.0)
		assert.Zero(t, c.Debt)
		assert.Equal(t, ExpectStay, c.PriceExpectation)
	}

	// Normal(500, 50) should land well inside 10 sigma.
	for _, c := range consumers {
		assert.InDelta(t, 500.0, c.Wealth, 500)
		assert.InDelta(t, 300.0, c.Wage, 150)
	}
}

func TestSpawnFactory(t *testing.T) {
	s := NewSpawner(42)
	origin := world.Point{X: -1, Y: 4}
	producers := s.SpawnFactory(origin, 3, testSpawn)
	require.Len(t, producers, 3)

	for i, p := range producers {
		assert.Equal(t, uint64(i+1), p.ID)
		assert.Equal(t, origin, p.Origin)
		assert.Equal(t, StateMovingToMarket, p.State)
		assert.Equal(t, 10.0, p.Output)
		assert.Equal(t, 150.0, p.Capacity)
		assert.Zero(t, p.Costs)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	g := world.NewGrid(25)

	a := NewSpawner(7)
	b := NewSpawner(7)

	for i := 0; i < 10; i++ {
		require.Equal(t, a.RandomCell(g), b.RandomCell(g))
	}

	ca := a.SpawnHousehold(world.Point{}, 4, testSpawn)
	cb := b.SpawnHousehold(world.Point{}, 4, testSpawn)
	for i := range ca {
		assert.Equal(t, ca[i].Wealth, cb[i].Wealth)
		assert.Equal(t, ca[i].Wage, cb[i].Wage)
	}
}

func TestRandomCellOnGrid(t *testing.T) {
	g := world.NewGrid(25)
	s := NewSpawner(1)
	for i := 0; i < 200; i++ {
		assert.True(t, g.Contains(s.RandomCell(g)))
	}
}

func TestExpectationString(t *testing.T) {
	assert.Equal(t, "up", ExpectUp.String())
	assert.Equal(t, "stay", ExpectStay.String())
	assert.Equal(t, "down", ExpectDown.String())
}

func TestLifecycleStateString(t *testing.T) {
	assert.Equal(t, "moving_to_market", StateMovingToMarket.String())
	assert.Equal(t, "at_market", StateAtMarket.String())
	assert.Equal(t, "returning", StateReturning.String())
	assert.Equal(t, "at_origin", StateAtOrigin.String())
}
