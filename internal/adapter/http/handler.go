package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/app/replay"
	"galaxyassist/internal/app/route"
	"galaxyassist/internal/app/target"
	"galaxyassist/internal/domain/grind"
	"galaxyassist/internal/domain/travel"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const agentIDHeader = "X-Agent-ID"

type Handler struct {
	RouteUC  route.UseCase
	TargetUC target.UseCase
	ReplayUC replay.UseCase
	Graphs   route.GraphProvider
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.POST("/route/plan", h.plan)
	api.POST("/route/nearest", h.nearest)
	api.POST("/route/navigate", h.navigate)
	api.GET("/route/runs", h.runs)
	api.POST("/grind/target", h.grindTarget)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/healthz", h.health)
}

type planRequest struct {
	Start       travel.Location `json:"start"`
	Destination travel.Location `json:"destination"`
}

type nearestRequest struct {
	Planet   string       `json:"planet"`
	Position travel.Point `json:"position"`
}

type navigateRequest struct {
	AgentID       string          `json:"agent_id,omitempty"`
	Start         travel.Location `json:"start"`
	StartPosition *travel.Point   `json:"start_position,omitempty"`
	Destination   travel.Location `json:"destination"`
}

type grindTargetRequest struct {
	Mobs          []grind.Mob `json:"mobs"`
	PreferredLoot []string    `json:"preferred_loot"`
	MinLevel      int         `json:"min_level"`
	MaxLevel      int         `json:"max_level"`
}

func (h Handler) plan(c context.Context, ctx *app.RequestContext) {
	var body planRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.RouteUC.Plan(c, route.PlanRequest{
		StartPlanet: body.Start.Planet,
		StartCity:   body.Start.City,
		DestPlanet:  body.Destination.Planet,
		DestCity:    body.Destination.City,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) nearest(c context.Context, ctx *app.RequestContext) {
	var body nearestRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.RouteUC.Nearest(c, route.NearestRequest{Planet: body.Planet, Position: body.Position})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) navigate(c context.Context, ctx *app.RequestContext) {
	var body navigateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	agentID := agentIDFrom(ctx, body.AgentID)
	if agentID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_agent_id", ErrMissingAgentID.Error())
		return
	}

	resp, err := h.RouteUC.Navigate(c, route.NavigateRequest{
		AgentID:       agentID,
		StartPlanet:   body.Start.Planet,
		StartCity:     body.Start.City,
		StartPosition: body.StartPosition,
		DestPlanet:    body.Destination.Planet,
		DestCity:      body.Destination.City,
	})
	if err != nil {
		if resp.Status == ports.NavigationFailed {
			writeMovementFailed(ctx, err, resp)
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) runs(c context.Context, ctx *app.RequestContext) {
	agentID := agentIDFrom(ctx, string(ctx.Query("agent_id")))
	if agentID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_agent_id", ErrMissingAgentID.Error())
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		AgentID:      agentID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
		Status:       string(ctx.Query("status")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) grindTarget(c context.Context, ctx *app.RequestContext) {
	var body grindTargetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.TargetUC.Execute(c, target.Request{
		Mobs:          body.Mobs,
		PreferredLoot: body.PreferredLoot,
		MinLevel:      body.MinLevel,
		MaxLevel:      body.MaxLevel,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) health(c context.Context, ctx *app.RequestContext) {
	if h.Graphs == nil {
		ctx.JSON(consts.StatusOK, map[string]any{"status": "ok"})
		return
	}
	g, err := h.Graphs.Graph(c)
	if err != nil {
		ctx.JSON(consts.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"status": "ok",
		"stops":  g.Len(),
		"routes": g.EdgeCount(),
	})
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingAgentID = errors.New("missing x-agent-id header")

func agentIDFrom(ctx *app.RequestContext, fallback string) string {
	if id := strings.TrimSpace(string(ctx.GetHeader(agentIDHeader))); id != "" {
		return id
	}
	return strings.TrimSpace(fallback)
}

func writeError(ctx *app.RequestContext, err error) {
	var notFound *travel.RouteNotFoundError
	switch {
	case errors.As(err, &notFound):
		writeErrorDetails(ctx, consts.StatusNotFound, "route_not_found", err.Error(), map[string]any{
			"from": notFound.From,
			"to":   notFound.To,
		})
	case errors.Is(err, travel.ErrRouteNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "route_not_found", err.Error())
	case errors.Is(err, travel.ErrUnknownLocation):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_location", err.Error())
	case errors.Is(err, travel.ErrMalformedGraph):
		writeErrorBody(ctx, consts.StatusInternalServerError, "malformed_graph", err.Error())
	case errors.Is(err, route.ErrMoverUnavailable):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "mover_unavailable", err.Error())
	case errors.Is(err, route.ErrInvalidRequest),
		errors.Is(err, target.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, grind.ErrInvalidMob):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeMovementFailed(ctx *app.RequestContext, err error, resp route.NavigateResponse) {
	ctx.JSON(consts.StatusBadGateway, map[string]any{
		"error": map[string]any{
			"code":    "movement_failed",
			"message": err.Error(),
			"details": map[string]any{
				"run_id":         resp.RunID,
				"completed_legs": resp.CompletedLegs,
				"total_legs":     len(resp.Legs),
			},
		},
		"navigation": resp,
	})
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeErrorDetails(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
