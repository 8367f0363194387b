// Market placement — each region receives its markets on the cells with the
// highest commercial-attractiveness score, sampled from a seeded noise field
// so placement is deterministic per seed.
package world

import (
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// noiseScale controls how quickly attractiveness varies across the lattice.
// Small values give broad regional gradients rather than per-cell speckle.
const noiseScale = 0.08

// PlaceMarkets picks perRegion market cells in each of numRegions vertical
// bands. Cells are ranked by noise score, ties broken by coordinate order,
// so the result depends only on the grid shape and the seed.
func PlaceMarkets(g *Grid, numRegions, perRegion int, seed int64) []Point {
	if numRegions < 1 || perRegion < 1 {
		return nil
	}

	noise := opensimplex.NewNormalized(seed)

	type scored struct {
		cell  Point
		score float64
	}
	regions := make([][]scored, numRegions)

	for x := -g.Half; x <= g.Half; x++ {
		for y := -g.Half; y <= g.Half; y++ {
			cell := Point{X: x, Y: y}
			r := g.Region(cell, numRegions)
			regions[r] = append(regions[r], scored{
				cell:  cell,
				score: noise.Eval2(float64(x)*noiseScale, float64(y)*noiseScale),
			})
		}
	}

	var placed []Point
	for _, cells := range regions {
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].score != cells[j].score {
				return cells[i].score > cells[j].score
			}
			return cells[i].cell.Less(cells[j].cell)
		})
		n := perRegion
		if n > len(cells) {
			n = len(cells)
		}
		for i := 0; i < n; i++ {
			placed = append(placed, cells[i].cell)
		}
	}
	return placed
}
