// Package api provides the read-only HTTP API a visualization polls once
// per tick. Every endpoint is a GET snapshot of simulation state; there is
// no control surface.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Bonorinoa/agora/internal/engine"
	"github.com/Bonorinoa/agora/internal/world"
)

// Server serves simulation snapshots over HTTP.
type Server struct {
	Sim   *engine.Simulation
	Clock *engine.Clock
	Port  int
}

// Routes builds the endpoint mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/markets", s.handleMarkets)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/expectations", s.handleExpectations)
	return mux
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := s.Routes()
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"tick":             s.Sim.CurrentTick(),
		"sim_time":         engine.SimTime(s.Sim.CurrentTick()),
		"horizon":          s.Clock.Horizon,
		"markets":          len(s.Sim.Markets),
		"consumers":        len(s.Sim.Consumers),
		"producers":        len(s.Sim.Producers),
		"aggregate_demand": s.Sim.AD,
		"aggregate_supply": s.Sim.AS,
	})
}

type marketView struct {
	ID        uint64      `json:"id"`
	Position  world.Point `json:"position"`
	UnitPrice float64     `json:"unit_price"`
	Quantity  float64     `json:"quantity_available"`
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	views := make([]marketView, 0, len(s.Sim.Markets))
	var priceSum float64
	for _, m := range s.Sim.Markets {
		views = append(views, marketView{
			ID:        uint64(m.ID),
			Position:  m.Position,
			UnitPrice: m.UnitPrice,
			Quantity:  m.Quantity,
		})
		priceSum += m.UnitPrice
	}
	meanPrice := 0.0
	if len(views) > 0 {
		meanPrice = priceSum / float64(len(views))
	}
	writeJSON(w, map[string]any{
		"markets":    views,
		"mean_price": meanPrice,
	})
}

type consumerView struct {
	ID     uint64      `json:"id"`
	Pos    world.Point `json:"position"`
	State  string      `json:"state"`
	Wealth float64     `json:"wealth"`
	Debt   float64     `json:"debt"`
	Demand float64     `json:"demand"`
}

type producerView struct {
	ID     uint64      `json:"id"`
	Pos    world.Point `json:"position"`
	State  string      `json:"state"`
	Output float64     `json:"output"`
	Costs  float64     `json:"costs"`
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	consumers := make([]consumerView, 0, len(s.Sim.Consumers))
	for _, c := range s.Sim.Consumers {
		consumers = append(consumers, consumerView{
			ID: c.ID, Pos: c.Position, State: c.State.String(),
			Wealth: c.Wealth, Debt: c.Debt, Demand: c.Demand,
		})
	}
	producers := make([]producerView, 0, len(s.Sim.Producers))
	for _, p := range s.Sim.Producers {
		producers = append(producers, producerView{
			ID: p.ID, Pos: p.Position, State: p.State.String(),
			Output: p.Output, Costs: p.Costs,
		})
	}
	writeJSON(w, map[string]any{
		"consumers": consumers,
		"producers": producers,
	})
}

func (s *Server) handleExpectations(w http.ResponseWriter, r *http.Request) {
	consumerBuckets := map[string]int{"up": 0, "stay": 0, "down": 0}
	for _, c := range s.Sim.Consumers {
		consumerBuckets[c.PriceExpectation.String()]++
	}
	producerBuckets := map[string]int{"up": 0, "stay": 0, "down": 0}
	for _, p := range s.Sim.Producers {
		producerBuckets[p.DemandExpectation.String()]++
	}
	writeJSON(w, map[string]any{
		"price_expectation":  consumerBuckets,
		"demand_expectation": producerBuckets,
	})
}
