// Package world provides the bounded square lattice the economy lives on
// and the distance queries agents use to find markets.
package world

import "math"

// Point is a cell coordinate on the lattice.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo returns the Euclidean distance between two cells.
func (p Point) DistanceTo(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// StepToward moves one unit per axis toward the destination (diagonal
// steps allowed). Returns the destination itself once adjacent on both axes.
func (p Point) StepToward(dest Point) Point {
	next := p
	if dest.X > p.X {
		next.X++
	} else if dest.X < p.X {
		next.X--
	}
	if dest.Y > p.Y {
		next.Y++
	} else if dest.Y < p.Y {
		next.Y--
	}
	return next
}

// Less orders points by X then Y. Used as the stable tie-break when several
// markets score equally during selection and placement.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Grid is a bounded square lattice with cells in [-Half, +Half] on both axes.
type Grid struct {
	Half int `json:"half_extent"`
}

// NewGrid creates a grid with the given half-extent.
func NewGrid(half int) *Grid {
	return &Grid{Half: half}
}

// Width returns the number of cells along one axis.
func (g *Grid) Width() int {
	return 2*g.Half + 1
}

// Contains reports whether a cell lies on the lattice.
func (g *Grid) Contains(p Point) bool {
	return p.X >= -g.Half && p.X <= g.Half && p.Y >= -g.Half && p.Y <= g.Half
}

// Clamp moves a point onto the lattice if it fell outside.
func (g *Grid) Clamp(p Point) Point {
	if p.X < -g.Half {
		p.X = -g.Half
	}
	if p.X > g.Half {
		p.X = g.Half
	}
	if p.Y < -g.Half {
		p.Y = -g.Half
	}
	if p.Y > g.Half {
		p.Y = g.Half
	}
	return p
}

// Region returns the index of the vertical band a cell belongs to when the
// grid is split into n equal regions along the X axis.
func (g *Grid) Region(p Point, n int) int {
	if n <= 1 {
		return 0
	}
	width := g.Width()
	band := width / n
	if band < 1 {
		band = 1
	}
	idx := (p.X + g.Half) / band
	if idx >= n {
		idx = n - 1
	}
	return idx
}
