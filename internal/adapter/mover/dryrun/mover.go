// Package dryrun is a movement interface that only logs and records the
// commands it is given. It is used when no game bridge is configured.
package dryrun

import (
	"context"
	"log/slog"
	"sync"
)

type Call struct {
	AgentID string `json:"agent_id"`
	Action  string `json:"action"`
	City    string `json:"city,omitempty"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
}

type Mover struct {
	logger *slog.Logger

	mu    sync.Mutex
	calls []Call
}

func New(logger *slog.Logger) *Mover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mover{logger: logger.With("component", "dryrun_mover")}
}

func (m *Mover) TravelToCity(ctx context.Context, agentID, city string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.record(Call{AgentID: agentID, Action: "travel_to_city", City: city})
	m.logger.Info("travel to city", "agent_id", agentID, "city", city)
	return nil
}

func (m *Mover) WalkToCoords(ctx context.Context, agentID string, x, y int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.record(Call{AgentID: agentID, Action: "walk_to_coords", X: x, Y: y})
	m.logger.Info("walk to coords", "agent_id", agentID, "x", x, "y", y)
	return nil
}

func (m *Mover) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

func (m *Mover) record(c Call) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}
