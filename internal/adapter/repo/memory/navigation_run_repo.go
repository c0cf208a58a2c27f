package memory

import (
	"context"

	"galaxyassist/internal/app/ports"
)

type NavigationRunRepo struct {
	store *Store
}

func NewNavigationRunRepo(store *Store) NavigationRunRepo {
	return NavigationRunRepo{store: store}
}

// Save expects the caller to hold the store lock through TxManager.
func (r NavigationRunRepo) Save(_ context.Context, run ports.NavigationRunRecord) error {
	for _, existing := range r.store.runs[run.AgentID] {
		if existing.RunID == run.RunID {
			return ports.ErrConflict
		}
	}
	r.store.runs[run.AgentID] = append(r.store.runs[run.AgentID], run)
	return nil
}

// ListByAgentID returns runs newest first.
func (r NavigationRunRepo) ListByAgentID(_ context.Context, agentID string, limit int) ([]ports.NavigationRunRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	runs := r.store.runs[agentID]
	out := make([]ports.NavigationRunRecord, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		out = append(out, runs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
