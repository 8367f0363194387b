// Package engine provides the tick-based simulation loop. One tick is one
// simulated hour; the clock stops hard at the horizon.
package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// Clock drives the simulation to its horizon.
type Clock struct {
	Tick     uint64        // Current tick counter
	Horizon  uint64        // Hard stop; the run never ticks past this
	Interval time.Duration // Optional pacing between ticks (0 = flat out)

	// OnTick runs every tick with the new tick number.
	OnTick func(tick uint64)

	running bool
}

// NewClock creates a clock with the given horizon.
func NewClock(horizon uint64) *Clock {
	return &Clock{Horizon: horizon}
}

// Run advances ticks until the horizon or Stop. Blocks.
func (c *Clock) Run() {
	c.running = true
	slog.Info("clock started", "tick", c.Tick, "horizon", c.Horizon)

	for c.running && c.Tick < c.Horizon {
		start := time.Now()
		c.Tick++
		if c.OnTick != nil {
			c.OnTick(c.Tick)
		}
		if c.Interval > 0 {
			if elapsed := time.Since(start); elapsed < c.Interval {
				time.Sleep(c.Interval - elapsed)
			}
		}
	}

	c.running = false
	slog.Info("clock stopped", "tick", c.Tick)
}

// Stop halts the loop after the current tick.
func (c *Clock) Stop() {
	c.running = false
}

// SimTime renders a tick as simulated day/hour.
func SimTime(tick uint64) string {
	return fmt.Sprintf("day %d, %02d:00", tick/24+1, tick%24)
}
