package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	metricsinmem "galaxyassist/internal/adapter/metrics/inmemory"
	"galaxyassist/internal/adapter/mover/dryrun"
	staticloot "galaxyassist/internal/adapter/loot/static"
	"galaxyassist/internal/adapter/repo/memory"
	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/app/replay"
	"galaxyassist/internal/app/route"
	"galaxyassist/internal/app/target"
	"galaxyassist/internal/domain/grind"
	"galaxyassist/internal/domain/travel"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func sampleStops() []travel.ShuttleStop {
	return []travel.ShuttleStop{
		{Planet: "tatooine", City: "mos_eisley", Coordinates: travel.Point{X: 3528, Y: -4804}, Destinations: []travel.Location{
			{Planet: "tatooine", City: "anchorhead"},
			{Planet: "corellia", City: "coronet"},
		}},
		{Planet: "tatooine", City: "anchorhead", Coordinates: travel.Point{X: 40, Y: -5350}, Destinations: []travel.Location{
			{Planet: "tatooine", City: "mos_eisley"},
		}},
		{Planet: "corellia", City: "coronet", Coordinates: travel.Point{X: -66, Y: -4696}, Destinations: []travel.Location{
			{Planet: "tatooine", City: "mos_eisley"},
		}},
		{Planet: "naboo", City: "theed", Coordinates: travel.Point{X: -4856, Y: 4162}, Destinations: []travel.Location{}},
	}
}

type failingMover struct {
	failCity string
}

func (m failingMover) TravelToCity(_ context.Context, _ string, city string) error {
	if city == m.failCity {
		return errors.New("shuttle cancelled")
	}
	return nil
}

func (m failingMover) WalkToCoords(context.Context, string, int, int) error { return nil }

type brokenSource struct{}

func (brokenSource) LoadStops(context.Context) ([]travel.ShuttleStop, error) {
	return nil, &travel.MalformedGraphError{Reason: "bad file"}
}

func newTestHandler(mover ports.Mover) (Handler, *memory.Store) {
	store := memory.NewStore()
	store.SeedStops(sampleStops())
	graphs := route.NewCachedGraph(memory.NewShuttleGraph(store), 0)
	runs := memory.NewNavigationRunRepo(store)
	kpi := metricsinmem.NewRecorder()
	seq := 0
	return Handler{
		RouteUC: route.UseCase{
			Graphs:    graphs,
			Mover:     mover,
			Runs:      runs,
			TxManager: memory.NewTxManager(store),
			Metrics:   kpi,
			NewID: func() string {
				seq++
				return fmt.Sprintf("run-%d", seq)
			},
			Now: func() time.Time { return time.Unix(1700000000+int64(seq), 0) },
		},
		TargetUC: target.UseCase{Loot: staticloot.Default(), Metrics: kpi, Rand: target.NewLockedRand(1)},
		ReplayUC: replay.UseCase{Runs: runs},
		Graphs:   graphs,
		KPI:      kpi,
	}, store
}

func decodeBody(t *testing.T, ctx *app.RequestContext) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v (%s)", err, string(ctx.Response.Body()))
	}
	return body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestPlan_OK(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"start":{"planet":"tatooine","city":"anchorhead"},"destination":{"planet":"corellia","city":"coronet"}}`))

	h.plan(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, string(ctx.Response.Body()))
	}
	var resp route.PlanResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Hops != 2 || len(resp.Route) != 3 || resp.Route[1].City != "mos_eisley" {
		t.Fatalf("unexpected route: %+v", resp)
	}
	if len(resp.Legs) != 3 || resp.Legs[2].Kind != travel.LegWalk || resp.Legs[2].X != -66 {
		t.Fatalf("unexpected legs: %+v", resp.Legs)
	}
}

func TestPlan_RouteNotFoundCarriesDetails(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"start":{"planet":"tatooine","city":"mos_eisley"},"destination":{"planet":"naboo","city":"theed"}}`))

	h.plan(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	body := decodeBody(t, ctx)
	if got, want := errorCode(body), "route_not_found"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
	details, _ := body["error"].(map[string]any)["details"].(map[string]any)
	to, _ := details["to"].(map[string]any)
	if to["city"] != "theed" {
		t.Fatalf("expected destination in details, got=%v", details)
	}
}

func TestPlan_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"start":`))

	h.plan(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(decodeBody(t, ctx)), "invalid_json"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestNearest_UnknownPlanet(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"planet":"hoth","position":{"x":1,"y":2}}`))

	h.nearest(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(decodeBody(t, ctx)), "unknown_location"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestNavigate_CompletesAndIsListed(t *testing.T) {
	mover := dryrun.New(nil)
	h, _ := newTestHandler(mover)
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(agentIDHeader, "agent-1")
	ctx.Request.SetBody([]byte(`{"start":{"planet":"tatooine"},"start_position":{"x":100,"y":-5300},"destination":{"planet":"corellia","city":"coronet"}}`))

	h.navigate(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, string(ctx.Response.Body()))
	}
	calls := mover.Calls()
	if len(calls) != 3 || calls[0].City != "mos_eisley" || calls[1].City != "coronet" || calls[2].Action != "walk_to_coords" {
		t.Fatalf("unexpected mover calls: %+v", calls)
	}

	list := &app.RequestContext{}
	list.Request.SetRequestURI("/api/route/runs?limit=5")
	list.Request.Header.Set(agentIDHeader, "agent-1")
	h.runs(context.Background(), list)
	if got, want := list.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("runs status mismatch: got=%d want=%d body=%s", got, want, string(list.Response.Body()))
	}
	var runs replay.Response
	if err := json.Unmarshal(list.Response.Body(), &runs); err != nil {
		t.Fatalf("unmarshal runs: %v", err)
	}
	if len(runs.Runs) != 1 || runs.Runs[0].Status != ports.NavigationCompleted || runs.Runs[0].CompletedLegs != 3 {
		t.Fatalf("unexpected runs: %+v", runs.Runs)
	}
	if runs.LastArrival == nil || runs.LastArrival.City != "coronet" {
		t.Fatalf("unexpected last arrival: %+v", runs.LastArrival)
	}
}

func TestNavigate_MovementFailureIsBadGateway(t *testing.T) {
	h, _ := newTestHandler(failingMover{failCity: "coronet"})
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"agent_id":"agent-2","start":{"planet":"tatooine","city":"mos_eisley"},"destination":{"planet":"corellia","city":"coronet"}}`))

	h.navigate(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadGateway; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	body := decodeBody(t, ctx)
	if got, want := errorCode(body), "movement_failed"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
	details, _ := body["error"].(map[string]any)["details"].(map[string]any)
	if details["completed_legs"] != float64(0) || details["run_id"] != "run-1" {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestNavigate_RequiresAgentID(t *testing.T) {
	h, _ := newTestHandler(dryrun.New(nil))
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"start":{"planet":"tatooine","city":"mos_eisley"},"destination":{"planet":"corellia","city":"coronet"}}`))

	h.navigate(context.Background(), ctx)

	if got, want := errorCode(decodeBody(t, ctx)), "missing_agent_id"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestNavigate_WithoutMoverIsUnavailable(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(agentIDHeader, "agent-1")
	ctx.Request.SetBody([]byte(`{"start":{"planet":"tatooine","city":"mos_eisley"},"destination":{"planet":"corellia","city":"coronet"}}`))

	h.navigate(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusServiceUnavailable; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestGrindTarget_UsesLootLookup(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"mobs":[{"name":"womp rat","level":10,"loot":["womp rat hide"]},{"name":"Bantha","level":20}],"preferred_loot":["Bantha Milk"],"min_level":5,"max_level":30}`))

	h.grindTarget(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, string(ctx.Response.Body()))
	}
	var resp target.Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Found || resp.Target == nil || resp.Target.Name != "Bantha" || resp.Score != 120 || resp.Fallback {
		t.Fatalf("unexpected selection: %+v", resp)
	}
}

func TestGrindTarget_DefaultLootPicksKraytDragonForPearl(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		h, _ := newTestHandler(nil)
		h.TargetUC.Rand = target.NewLockedRand(seed)
		ctx := &app.RequestContext{}
		ctx.Request.SetBody([]byte(`{"mobs":[{"name":"Bantha","level":15},{"name":"Canyon Krayt Dragon","level":80}],"preferred_loot":["krayt pearl"],"min_level":1,"max_level":90}`))

		h.grindTarget(context.Background(), ctx)

		if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
			t.Fatalf("seed %d: status mismatch: got=%d want=%d body=%s", seed, got, want, string(ctx.Response.Body()))
		}
		var resp target.Response
		if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
			t.Fatalf("seed %d: unmarshal: %v", seed, err)
		}
		if !resp.Found || resp.Target == nil || resp.Target.Name != "Canyon Krayt Dragon" || resp.Fallback {
			t.Fatalf("seed %d: unexpected selection: %+v", seed, resp)
		}
	}
}

func TestRuns_UnknownAgentIsEmptyList(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/route/runs")
	ctx.Request.Header.Set(agentIDHeader, "agent-without-runs")

	h.runs(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, string(ctx.Response.Body()))
	}
	body := decodeBody(t, ctx)
	runs, ok := body["runs"].([]any)
	if !ok || len(runs) != 0 || body["last_arrival"] != nil {
		t.Fatalf("expected empty run list, got=%v", body)
	}
}

func TestGrindTarget_NothingEligible(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"mobs":[{"name":"krayt","level":90,"loot":[]}],"min_level":1,"max_level":10}`))

	h.grindTarget(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	body := decodeBody(t, ctx)
	if body["found"] != false || body["target"] != nil {
		t.Fatalf("expected no target, got=%v", body)
	}
}

func TestGrindTarget_InvalidMob(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"mobs":[{"name":"","level":3}],"max_level":10}`))

	h.grindTarget(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestHealth_ReportsGraphSize(t *testing.T) {
	h, _ := newTestHandler(nil)
	ctx := &app.RequestContext{}
	h.health(context.Background(), ctx)

	body := decodeBody(t, ctx)
	if body["status"] != "ok" || body["stops"] != float64(4) || body["routes"] != float64(4) {
		t.Fatalf("unexpected health body: %v", body)
	}

	h.Graphs = route.NewCachedGraph(brokenSource{}, 0)
	ctx = &app.RequestContext{}
	h.health(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusServiceUnavailable; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_CountsRequests(t *testing.T) {
	h, _ := newTestHandler(nil)
	plan := &app.RequestContext{}
	plan.Request.SetBody([]byte(`{"start":{"planet":"tatooine","city":"mos_eisley"},"destination":{"planet":"naboo","city":"theed"}}`))
	h.plan(context.Background(), plan)

	ctx := &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	var snap metricsinmem.Snapshot
	if err := json.Unmarshal(ctx.Response.Body(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.RoutesFailed != 1 || snap.RouteFailuresByCode["route_not_found"] != 1 {
		t.Fatalf("unexpected kpi snapshot: %+v", snap)
	}

	h.KPI = nil
	ctx = &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&travel.UnknownLocationError{Location: travel.Location{Planet: "hoth"}}, consts.StatusNotFound, "unknown_location"},
		{travel.ErrRouteNotFound, consts.StatusNotFound, "route_not_found"},
		{&travel.MalformedGraphError{Reason: "dup"}, consts.StatusInternalServerError, "malformed_graph"},
		{route.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{fmt.Errorf("%w: %q", grind.ErrInvalidMob, ""), consts.StatusBadRequest, "bad_request"},
		{replay.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{ports.ErrNotFound, consts.StatusNotFound, "not_found"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{route.ErrMoverUnavailable, consts.StatusServiceUnavailable, "mover_unavailable"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Fatalf("%v: status mismatch: got=%d want=%d", tc.err, got, tc.status)
		}
		if got := errorCode(decodeBody(t, ctx)); got != tc.code {
			t.Fatalf("%v: code mismatch: got=%q want=%q", tc.err, got, tc.code)
		}
	}
}
