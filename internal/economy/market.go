// Package economy provides the market entity: a fixed trading location with
// an inventory of the single good, a unit price, and a hard capacity ceiling.
package economy

import "github.com/Bonorinoa/agora/internal/world"

// MarketID identifies a market. IDs start at 1; zero means unassigned.
type MarketID uint64

// Market is the trade state for one market cell. Quantity stays within
// [0, Capacity] across any sequence of commits and consumes.
type Market struct {
	ID       MarketID    `json:"id"`
	Position world.Point `json:"position"`

	Quantity  float64 `json:"quantity_available"`
	UnitPrice float64 `json:"unit_price"`
	Capacity  float64 `json:"market_capacity"`

	// ExcessSupplyRatio is the last local unmet-supply / supply ratio seen by
	// the price phase. Tracked for telemetry; it does not scale the price cut.
	ExcessSupplyRatio float64 `json:"excess_supply_ratio"`
}

// NewMarket creates a market at the given cell.
func NewMarket(id MarketID, pos world.Point, price, capacity float64) *Market {
	return &Market{
		ID:        id,
		Position:  pos,
		UnitPrice: price,
		Capacity:  capacity,
	}
}

// Commit adds supply to the market, clipped at capacity. Returns the amount
// actually stocked and the shortfall that did not fit.
func (m *Market) Commit(amount float64) (committed, shortfall float64) {
	if amount <= 0 {
		return 0, 0
	}
	space := m.Capacity - m.Quantity
	if space < 0 {
		space = 0
	}
	if amount <= space {
		m.Quantity += amount
		return amount, 0
	}
	m.Quantity = m.Capacity
	return space, amount - space
}

// Consume removes up to amount from the market and returns what was taken.
func (m *Market) Consume(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount > m.Quantity {
		amount = m.Quantity
	}
	m.Quantity -= amount
	return amount
}
