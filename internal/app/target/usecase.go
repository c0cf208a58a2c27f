package target

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/grind"
)

var ErrInvalidRequest = errors.New("invalid grind target request")

type UseCase struct {
	Loot    ports.LootTable
	Metrics ports.GrindMetrics
	Rand    *LockedRand
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.MinLevel < 0 || req.MaxLevel < 0 {
		return Response{}, ErrInvalidRequest
	}
	for _, m := range req.Mobs {
		if err := m.Validate(); err != nil {
			return Response{}, fmt.Errorf("%w: %q", err, m.Name)
		}
	}
	criteria := grind.Criteria{
		PreferredLoot: req.PreferredLoot,
		MinLevel:      req.MinLevel,
		MaxLevel:      req.MaxLevel,
	}
	tables, err := u.resolveLoot(ctx, req.Mobs, criteria)
	if err != nil {
		return Response{}, err
	}

	rng := u.Rand
	if rng == nil {
		rng = NewLockedRand(time.Now().UnixNano())
	}
	sel, ok := grind.ChooseTarget(req.Mobs, criteria, func(name string) []string {
		return tables[name]
	}, rng)
	if !ok {
		if u.Metrics != nil {
			u.Metrics.RecordNoTarget()
		}
		return Response{MatchedLoot: []string{}}, nil
	}
	if u.Metrics != nil {
		u.Metrics.RecordTargetSelected(sel.Fallback)
	}
	mob := sel.Mob
	return Response{
		Found:       true,
		Target:      &mob,
		Score:       sel.Score,
		MatchedLoot: sel.MatchedLoot,
		Fallback:    sel.Fallback,
		Eligible:    sel.Eligible,
	}, nil
}

// resolveLoot fetches loot tables up front for eligible mobs without inline
// loot, so selection itself stays free of I/O. Unknown mobs get no loot.
func (u UseCase) resolveLoot(ctx context.Context, mobs []grind.Mob, c grind.Criteria) (map[string][]string, error) {
	out := map[string][]string{}
	if u.Loot == nil {
		return out, nil
	}
	for _, m := range mobs {
		if m.Loot != nil || !c.Eligible(m) {
			continue
		}
		if _, done := out[m.Name]; done {
			continue
		}
		loot, err := u.Loot.LootForMob(ctx, m.Name)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				out[m.Name] = []string{}
				continue
			}
			return nil, fmt.Errorf("loot for %q: %w", m.Name, err)
		}
		out[m.Name] = loot
	}
	return out, nil
}

// LockedRand is a *rand.Rand that is safe to share between requests.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
