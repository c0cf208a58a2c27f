package neo4jgraph

import (
	"context"
	"fmt"
	"math"

	"galaxyassist/internal/domain/travel"
)

// Stops are (:ShuttleStop {planet, city, x, y, position}) nodes. Each
// destination is a [:SHUTTLE_TO {position, dest_planet, dest_city}] edge to a
// (:ShuttleDestination) key node, so a destination naming a stop that does not
// exist is kept as written.
const (
	loadStopsQuery = `MATCH (s:ShuttleStop)
RETURN s.planet AS planet, s.city AS city, s.x AS x, s.y AS y
ORDER BY s.planet, s.position`

	loadRoutesQuery = `MATCH (s:ShuttleStop)-[r:SHUTTLE_TO]->(:ShuttleDestination)
RETURN s.planet AS planet, s.city AS city, r.dest_planet AS dest_planet, r.dest_city AS dest_city
ORDER BY s.planet, s.city, r.position`

	clearQuery = `MATCH (n) WHERE n:ShuttleStop OR n:ShuttleDestination DETACH DELETE n`

	createStopQuery = `CREATE (s:ShuttleStop {planet: $planet, city: $city, x: $x, y: $y, position: $position})
WITH s
UNWIND $destinations AS d
MERGE (t:ShuttleDestination {planet: d.planet, city: d.city})
CREATE (s)-[:SHUTTLE_TO {position: d.position, dest_planet: d.planet, dest_city: d.city}]->(t)`
)

type Source struct {
	Client Client
}

func (s Source) LoadStops(ctx context.Context) ([]travel.ShuttleStop, error) {
	stopRes, err := s.Client.ExecuteRead(ctx, loadStopsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("load shuttle stops: %w", err)
	}
	routeRes, err := s.Client.ExecuteRead(ctx, loadRoutesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("load shuttle routes: %w", err)
	}

	dests := map[travel.Location][]travel.Location{}
	for _, rec := range routeRes.Records {
		from := travel.Location{Planet: stringValue(rec["planet"]), City: stringValue(rec["city"])}
		to := travel.Location{Planet: stringValue(rec["dest_planet"]), City: stringValue(rec["dest_city"])}
		dests[from] = append(dests[from], to)
	}

	out := make([]travel.ShuttleStop, 0, len(stopRes.Records))
	for _, rec := range stopRes.Records {
		x, err := intValue(rec["x"])
		if err != nil {
			return nil, fmt.Errorf("load shuttle stops: x: %w", err)
		}
		y, err := intValue(rec["y"])
		if err != nil {
			return nil, fmt.Errorf("load shuttle stops: y: %w", err)
		}
		stop := travel.ShuttleStop{
			Planet:      stringValue(rec["planet"]),
			City:        stringValue(rec["city"]),
			Coordinates: travel.Point{X: x, Y: y},
		}
		stop.Destinations = dests[stop.Location()]
		if stop.Destinations == nil {
			stop.Destinations = []travel.Location{}
		}
		out = append(out, stop)
	}
	return out, nil
}

// ReplaceStops clears the stored network and writes stops in order.
func (s Source) ReplaceStops(ctx context.Context, stops []travel.ShuttleStop) error {
	if _, err := s.Client.ExecuteWrite(ctx, clearQuery, nil); err != nil {
		return fmt.Errorf("clear shuttle graph: %w", err)
	}
	for i, stop := range stops {
		destinations := make([]map[string]any, 0, len(stop.Destinations))
		for j, d := range stop.Destinations {
			destinations = append(destinations, map[string]any{
				"planet":   d.Planet,
				"city":     d.City,
				"position": int64(j),
			})
		}
		params := map[string]any{
			"planet":       stop.Planet,
			"city":         stop.City,
			"x":            int64(stop.Coordinates.X),
			"y":            int64(stop.Coordinates.Y),
			"position":     int64(i),
			"destinations": destinations,
		}
		if _, err := s.Client.ExecuteWrite(ctx, createStopQuery, params); err != nil {
			return fmt.Errorf("write shuttle stop %s: %w", stop.Location(), err)
		}
	}
	return nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("coordinate %v is not a whole number", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected coordinate type %T", v)
	}
}
