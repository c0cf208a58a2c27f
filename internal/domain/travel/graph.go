package travel

// Graph is the shuttle network indexed for lookup and traversal. Build it once
// with NewGraph and share it read-only.
type Graph struct {
	stops     map[Location]ShuttleStop
	adjacency map[Location][]Location
	byPlanet  map[string][]ShuttleStop
	edges     int
}

func NewGraph(stops []ShuttleStop) (Graph, error) {
	g := Graph{
		stops:     make(map[Location]ShuttleStop, len(stops)),
		adjacency: make(map[Location][]Location, len(stops)),
		byPlanet:  map[string][]ShuttleStop{},
	}
	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return Graph{}, err
		}
		loc := s.Location()
		if _, exists := g.stops[loc]; exists {
			return Graph{}, &MalformedGraphError{Stop: loc, Reason: "duplicate stop"}
		}
		dests := make([]Location, len(s.Destinations))
		copy(dests, s.Destinations)
		s.Destinations = dests

		g.stops[loc] = s
		g.adjacency[loc] = dests
		g.byPlanet[s.Planet] = append(g.byPlanet[s.Planet], s)
		g.edges += len(dests)
	}
	return g, nil
}

func (g Graph) Stop(loc Location) (ShuttleStop, bool) {
	s, ok := g.stops[loc]
	return s, ok
}

func (g Graph) StopsOnPlanet(planet string) []ShuttleStop {
	return g.byPlanet[planet]
}

func (g Graph) Neighbors(loc Location) []Location {
	return g.adjacency[loc]
}

func (g Graph) Len() int {
	return len(g.stops)
}

func (g Graph) EdgeCount() int {
	return g.edges
}
