package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same cell", Point{0, 0}, Point{0, 0}, 0},
		{"axis aligned", Point{0, 0}, Point{3, 0}, 3},
		{"diagonal", Point{0, 0}, Point{3, 4}, 5},
		{"negative quadrant", Point{-2, -2}, Point{1, 2}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.DistanceTo(tt.b), 1e-9)
		})
	}
}

func TestStepTowardConverges(t *testing.T) {
	pos := Point{-10, 7}
	dest := Point{4, -3}

	steps := 0
	for pos != dest {
		next := pos.StepToward(dest)
		require.NotEqual(t, pos, next, "step must make progress")
		assert.LessOrEqual(t, next.DistanceTo(dest), pos.DistanceTo(dest))
		pos = next
		steps++
		require.Less(t, steps, 100, "step walk must terminate")
	}
	// Chebyshev distance: max(14, 10) steps.
	assert.Equal(t, 14, steps)
}

func TestGridClampAndContains(t *testing.T) {
	g := NewGrid(25)

	assert.True(t, g.Contains(Point{25, -25}))
	assert.False(t, g.Contains(Point{26, 0}))
	assert.Equal(t, Point{25, -25}, g.Clamp(Point{40, -31}))
	assert.Equal(t, 51, g.Width())
}

func TestRegionBands(t *testing.T) {
	g := NewGrid(25)

	assert.Equal(t, 0, g.Region(Point{-25, 0}, 4))
	assert.Equal(t, 3, g.Region(Point{25, 0}, 4))
	assert.Equal(t, 0, g.Region(Point{10, 3}, 1))

	// Every cell lands in a valid band.
	for x := -25; x <= 25; x++ {
		r := g.Region(Point{x, 0}, 4)
		require.GreaterOrEqual(t, r, 0)
		require.Less(t, r, 4)
	}
}

func TestPlaceMarketsDeterministic(t *testing.T) {
	g := NewGrid(25)

	a := PlaceMarkets(g, 4, 2, 42)
	b := PlaceMarkets(g, 4, 2, 42)
	require.Equal(t, a, b, "placement must be reproducible per seed")

	c := PlaceMarkets(g, 4, 2, 43)
	assert.NotEqual(t, a, c, "different seeds should move markets")
}

func TestPlaceMarketsPerRegion(t *testing.T) {
	g := NewGrid(25)
	cells := PlaceMarkets(g, 4, 2, 42)
	require.Len(t, cells, 8)

	counts := make(map[int]int)
	for _, cell := range cells {
		require.True(t, g.Contains(cell))
		counts[g.Region(cell, 4)]++
	}
	for r := 0; r < 4; r++ {
		assert.Equal(t, 2, counts[r], "region %d should hold 2 markets", r)
	}
}
