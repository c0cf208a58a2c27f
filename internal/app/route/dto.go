package route

import (
	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"
)

type PlanRequest struct {
	StartPlanet string
	StartCity   string
	DestPlanet  string
	DestCity    string
}

type PlanResponse struct {
	Route []StopView   `json:"route"`
	Legs  []travel.Leg `json:"legs"`
	Hops  int          `json:"hops"`
}

type NearestRequest struct {
	Planet   string
	Position travel.Point
}

type NearestResponse struct {
	Stop StopView `json:"stop"`
}

type NavigateRequest struct {
	AgentID     string
	StartPlanet string
	StartCity   string
	// StartPosition is used to pick the nearest terminal when StartCity is empty.
	StartPosition *travel.Point
	DestPlanet    string
	DestCity      string
}

type NavigateResponse struct {
	RunID         string                 `json:"run_id"`
	Route         []StopView             `json:"route"`
	Legs          []travel.Leg           `json:"legs"`
	CompletedLegs int                    `json:"completed_legs"`
	Status        ports.NavigationStatus `json:"status"`
}

type StopView struct {
	Planet      string       `json:"planet"`
	City        string       `json:"city"`
	Coordinates travel.Point `json:"coordinates"`
}

func toStopViews(route []travel.ShuttleStop) []StopView {
	out := make([]StopView, 0, len(route))
	for _, s := range route {
		out = append(out, toStopView(s))
	}
	return out
}

func toStopView(s travel.ShuttleStop) StopView {
	return StopView{Planet: s.Planet, City: s.City, Coordinates: s.Coordinates}
}
