package travel

import (
	"errors"
	"fmt"
	"strings"
)

type Location struct {
	Planet string `json:"planet" yaml:"planet"`
	City   string `json:"city" yaml:"city"`
}

func (l Location) String() string {
	return l.Planet + "/" + l.City
}

func (l Location) IsZero() bool {
	return strings.TrimSpace(l.Planet) == "" || strings.TrimSpace(l.City) == ""
}

type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// ShuttleStop is one terminal of the shuttle network. Destinations keep the
// order they were declared in; route search visits them in that order.
type ShuttleStop struct {
	Planet       string     `json:"planet"`
	City         string     `json:"city"`
	Coordinates  Point      `json:"coordinates"`
	Destinations []Location `json:"destinations"`
}

func (s ShuttleStop) Location() Location {
	return Location{Planet: s.Planet, City: s.City}
}

func (s ShuttleStop) Validate() error {
	if strings.TrimSpace(s.Planet) == "" || strings.TrimSpace(s.City) == "" {
		return &MalformedGraphError{Stop: s.Location(), Reason: "missing planet or city"}
	}
	for i, d := range s.Destinations {
		if d.IsZero() {
			return &MalformedGraphError{Stop: s.Location(), Reason: fmt.Sprintf("destination %d missing planet or city", i)}
		}
	}
	return nil
}

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrRouteNotFound   = errors.New("route not found")
	ErrMalformedGraph  = errors.New("malformed shuttle graph")
)

type UnknownLocationError struct {
	Location Location
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownLocation.Error(), e.Location.String())
}

func (e *UnknownLocationError) Unwrap() error {
	return ErrUnknownLocation
}

type RouteNotFoundError struct {
	From Location
	To   Location
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrRouteNotFound.Error(), e.From, e.To)
}

func (e *RouteNotFoundError) Unwrap() error {
	return ErrRouteNotFound
}

type MalformedGraphError struct {
	Stop   Location
	Reason string
}

func (e *MalformedGraphError) Error() string {
	if e.Stop == (Location{}) {
		return fmt.Sprintf("%s: %s", ErrMalformedGraph.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: stop %q: %s", ErrMalformedGraph.Error(), e.Stop.String(), e.Reason)
}

func (e *MalformedGraphError) Unwrap() error {
	return ErrMalformedGraph
}
