package inmemory

import (
	"sync"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"
)

type Snapshot struct {
	RoutesPlanned        uint64            `json:"routes_planned"`
	RouteHopsTotal       uint64            `json:"route_hops_total"`
	RoutesFailed         uint64            `json:"routes_failed"`
	RouteFailuresByCode  map[string]uint64 `json:"route_failures_by_code"`
	LegsByKind           map[string]uint64 `json:"legs_by_kind"`
	NavigationsCompleted uint64            `json:"navigations_completed"`
	NavigationsFailed    uint64            `json:"navigations_failed"`
	TargetsScored        uint64            `json:"targets_scored"`
	TargetsFallback      uint64            `json:"targets_fallback"`
	TargetsNone          uint64            `json:"targets_none"`
}

type Recorder struct {
	mu             sync.Mutex
	planned        uint64
	hops           uint64
	failed         uint64
	failuresByCode map[string]uint64
	legs           map[string]uint64
	navCompleted   uint64
	navFailed      uint64
	scored         uint64
	fallback       uint64
	none           uint64
}

var (
	_ ports.RouteMetrics = (*Recorder)(nil)
	_ ports.GrindMetrics = (*Recorder)(nil)
)

func NewRecorder() *Recorder {
	return &Recorder{
		failuresByCode: map[string]uint64{},
		legs:           map[string]uint64{},
	}
}

func (r *Recorder) RecordRoutePlanned(hops int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.planned++
	if hops > 0 {
		r.hops += uint64(hops)
	}
}

func (r *Recorder) RecordRouteFailed(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
	r.failuresByCode[code]++
}

func (r *Recorder) RecordLegExecuted(kind travel.LegKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.legs[string(kind)]++
}

func (r *Recorder) RecordNavigation(status ports.NavigationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch status {
	case ports.NavigationCompleted:
		r.navCompleted++
	case ports.NavigationFailed:
		r.navFailed++
	}
}

func (r *Recorder) RecordTargetSelected(fallback bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fallback {
		r.fallback++
		return
	}
	r.scored++
}

func (r *Recorder) RecordNoTarget() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.none++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		RoutesPlanned:        r.planned,
		RouteHopsTotal:       r.hops,
		RoutesFailed:         r.failed,
		RouteFailuresByCode:  make(map[string]uint64, len(r.failuresByCode)),
		LegsByKind:           make(map[string]uint64, len(r.legs)),
		NavigationsCompleted: r.navCompleted,
		NavigationsFailed:    r.navFailed,
		TargetsScored:        r.scored,
		TargetsFallback:      r.fallback,
		TargetsNone:          r.none,
	}
	for k, v := range r.failuresByCode {
		out.RouteFailuresByCode[k] = v
	}
	for k, v := range r.legs {
		out.LegsByKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
