package memory

import (
	"context"

	"galaxyassist/internal/domain/travel"
)

type ShuttleGraph struct {
	store *Store
}

func NewShuttleGraph(store *Store) ShuttleGraph {
	return ShuttleGraph{store: store}
}

func (g ShuttleGraph) LoadStops(_ context.Context) ([]travel.ShuttleStop, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	return append([]travel.ShuttleStop(nil), g.store.stops...), nil
}
