package replay

import (
	"context"
	"errors"
	"strings"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Runs ports.NavigationRunRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.AgentID) == "" {
		return Response{}, ErrInvalidRequest
	}
	// Limit counts runs that pass the filters, so the repository lists all.
	runs, err := u.Runs.ListByAgentID(ctx, req.AgentID, 0)
	if err != nil {
		return Response{}, err
	}
	runs = filterByTimeWindow(runs, req.OccurredFrom, req.OccurredTo)
	runs = filterByStatus(runs, req.Status)
	if req.Limit > 0 && len(runs) > req.Limit {
		runs = runs[:req.Limit]
	}

	out := make([]RunView, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunView{
			RunID:         r.RunID,
			From:          r.From,
			To:            r.To,
			Legs:          r.Legs,
			CompletedLegs: r.CompletedLegs,
			Status:        r.Status,
			Error:         r.Error,
			StartedAt:     r.StartedAt,
			FinishedAt:    r.FinishedAt,
		})
	}
	return Response{Runs: out, LastArrival: lastArrival(runs)}, nil
}

func filterByTimeWindow(runs []ports.NavigationRunRecord, from, to int64) []ports.NavigationRunRecord {
	if from <= 0 && to <= 0 {
		return runs
	}
	out := make([]ports.NavigationRunRecord, 0, len(runs))
	for _, r := range runs {
		ts := r.StartedAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, r)
	}
	return out
}

func filterByStatus(runs []ports.NavigationRunRecord, status string) []ports.NavigationRunRecord {
	status = strings.TrimSpace(status)
	if status == "" {
		return runs
	}
	out := make([]ports.NavigationRunRecord, 0, len(runs))
	for _, r := range runs {
		if string(r.Status) == status {
			out = append(out, r)
		}
	}
	return out
}

// lastArrival is the destination of the newest completed run. Runs are
// listed newest first.
func lastArrival(runs []ports.NavigationRunRecord) *travel.Location {
	for _, r := range runs {
		if r.Status == ports.NavigationCompleted {
			loc := r.To
			return &loc
		}
	}
	return nil
}
