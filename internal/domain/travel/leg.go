package travel

import (
	"context"
	"errors"
	"fmt"
)

type LegKind string

const (
	LegTravel LegKind = "travel"
	LegWalk   LegKind = "walk"
)

var ErrUnknownLegKind = errors.New("unknown leg kind")

type Leg struct {
	Kind LegKind `json:"kind"`
	City string  `json:"city,omitempty"`
	X    int     `json:"x"`
	Y    int     `json:"y"`
}

// BuildLegs turns a planned route into executable legs. The first stop is
// where the agent already stands, so boarding starts at the second stop; the
// route always ends with a walk to the destination terminal.
func BuildLegs(route []ShuttleStop) []Leg {
	if len(route) == 0 {
		return nil
	}
	legs := make([]Leg, 0, len(route))
	for _, s := range route[1:] {
		legs = append(legs, Leg{Kind: LegTravel, City: s.City})
	}
	last := route[len(route)-1]
	legs = append(legs, Leg{Kind: LegWalk, City: last.City, X: last.Coordinates.X, Y: last.Coordinates.Y})
	return legs
}

// Mover is the movement effector legs are executed against.
type Mover interface {
	TravelToCity(ctx context.Context, agentID, city string) error
	WalkToCoords(ctx context.Context, agentID string, x, y int) error
}

// Execute runs legs in order, one at a time. The first mover error stops the
// run and is returned unchanged. onLeg, when set, sees every completed leg.
func Execute(ctx context.Context, mover Mover, agentID string, legs []Leg, onLeg func(i int, leg Leg)) error {
	for i, leg := range legs {
		var err error
		switch leg.Kind {
		case LegTravel:
			err = mover.TravelToCity(ctx, agentID, leg.City)
		case LegWalk:
			err = mover.WalkToCoords(ctx, agentID, leg.X, leg.Y)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownLegKind, leg.Kind)
		}
		if err != nil {
			return err
		}
		if onLeg != nil {
			onLeg(i, leg)
		}
	}
	return nil
}

type Navigator struct {
	Graph Graph
	Mover Mover
}

// NavigateTo plans from start to dest and drives the mover along the route.
func (n Navigator) NavigateTo(ctx context.Context, agentID string, start, dest Location) ([]Leg, error) {
	route, err := PlanRoute(n.Graph, start, dest)
	if err != nil {
		return nil, err
	}
	legs := BuildLegs(route)
	if err := Execute(ctx, n.Mover, agentID, legs, nil); err != nil {
		return legs, err
	}
	return legs, nil
}
