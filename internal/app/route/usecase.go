package route

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest   = errors.New("invalid route request")
	ErrMoverUnavailable = errors.New("movement interface not configured")
)

type UseCase struct {
	Graphs    GraphProvider
	Mover     ports.Mover
	Runs      ports.NavigationRunRepository
	TxManager ports.TxManager
	Metrics   ports.RouteMetrics
	Logger    *slog.Logger
	NewID     func() string
	Now       func() time.Time
}

func (u UseCase) Plan(ctx context.Context, req PlanRequest) (PlanResponse, error) {
	g, err := u.Graphs.Graph(ctx)
	if err != nil {
		return PlanResponse{}, err
	}
	route, err := u.plan(g, location(req.StartPlanet, req.StartCity), location(req.DestPlanet, req.DestCity))
	if err != nil {
		return PlanResponse{}, err
	}
	return PlanResponse{
		Route: toStopViews(route),
		Legs:  travel.BuildLegs(route),
		Hops:  len(route) - 1,
	}, nil
}

func (u UseCase) Nearest(ctx context.Context, req NearestRequest) (NearestResponse, error) {
	if strings.TrimSpace(req.Planet) == "" {
		return NearestResponse{}, ErrInvalidRequest
	}
	g, err := u.Graphs.Graph(ctx)
	if err != nil {
		return NearestResponse{}, err
	}
	stop, err := travel.NearestShuttle(req.Position, req.Planet, g)
	if err != nil {
		return NearestResponse{}, err
	}
	return NearestResponse{Stop: toStopView(stop)}, nil
}

// Navigate plans a route and executes it leg by leg. A movement failure is
// returned unchanged together with a response describing how far the agent
// got; the run is recorded either way.
func (u UseCase) Navigate(ctx context.Context, req NavigateRequest) (NavigateResponse, error) {
	if strings.TrimSpace(req.AgentID) == "" {
		return NavigateResponse{}, ErrInvalidRequest
	}
	if u.Mover == nil {
		return NavigateResponse{}, ErrMoverUnavailable
	}
	g, err := u.Graphs.Graph(ctx)
	if err != nil {
		return NavigateResponse{}, err
	}

	start := location(req.StartPlanet, req.StartCity)
	if strings.TrimSpace(req.StartCity) == "" && req.StartPosition != nil {
		stop, err := travel.NearestShuttle(*req.StartPosition, req.StartPlanet, g)
		if err != nil {
			return NavigateResponse{}, err
		}
		start = stop.Location()
	}
	dest := location(req.DestPlanet, req.DestCity)
	route, err := u.plan(g, start, dest)
	if err != nil {
		return NavigateResponse{}, err
	}

	legs := travel.BuildLegs(route)
	run := ports.NavigationRunRecord{
		RunID:     u.newID(),
		AgentID:   req.AgentID,
		From:      start,
		To:        dest,
		Legs:      legs,
		StartedAt: u.now(),
	}
	log := u.logger().With("run_id", run.RunID, "agent_id", req.AgentID)
	log.Info("navigation started", "from", start.String(), "to", dest.String(), "legs", len(legs))

	moveErr := travel.Execute(ctx, u.Mover, req.AgentID, legs, func(i int, leg travel.Leg) {
		run.CompletedLegs = i + 1
		if u.Metrics != nil {
			u.Metrics.RecordLegExecuted(leg.Kind)
		}
		log.Debug("leg completed", "index", i, "kind", string(leg.Kind), "city", leg.City)
	})

	run.Status = ports.NavigationCompleted
	if moveErr != nil {
		run.Status = ports.NavigationFailed
		run.Error = moveErr.Error()
		log.Error("navigation failed", "completed_legs", run.CompletedLegs, "err", moveErr)
	} else {
		log.Info("navigation completed")
	}
	run.FinishedAt = u.now()
	if u.Metrics != nil {
		u.Metrics.RecordNavigation(run.Status)
	}

	resp := NavigateResponse{
		RunID:         run.RunID,
		Route:         toStopViews(route),
		Legs:          legs,
		CompletedLegs: run.CompletedLegs,
		Status:        run.Status,
	}
	if err := u.saveRun(ctx, run); err != nil {
		if moveErr != nil {
			log.Error("record navigation run", "err", err)
			return resp, moveErr
		}
		return resp, err
	}
	return resp, moveErr
}

func (u UseCase) plan(g travel.Graph, start, dest travel.Location) ([]travel.ShuttleStop, error) {
	route, err := travel.PlanRoute(g, start, dest)
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordRouteFailed(failureCode(err))
		}
		u.logger().Warn("route planning failed", "from", start.String(), "to", dest.String(), "err", err)
		return nil, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordRoutePlanned(len(route) - 1)
	}
	return route, nil
}

func (u UseCase) saveRun(ctx context.Context, run ports.NavigationRunRecord) error {
	if u.Runs == nil {
		return nil
	}
	if u.TxManager == nil {
		return u.Runs.Save(ctx, run)
	}
	return u.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		return u.Runs.Save(ctx, run)
	})
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}

func (u UseCase) newID() string {
	if u.NewID == nil {
		return uuid.NewString()
	}
	return u.NewID()
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}

func location(planet, city string) travel.Location {
	return travel.Location{Planet: strings.TrimSpace(planet), City: strings.TrimSpace(city)}
}

func failureCode(err error) string {
	switch {
	case errors.Is(err, travel.ErrUnknownLocation):
		return "unknown_location"
	case errors.Is(err, travel.ErrRouteNotFound):
		return "route_not_found"
	case errors.Is(err, travel.ErrMalformedGraph):
		return "malformed_graph"
	default:
		return "other"
	}
}
