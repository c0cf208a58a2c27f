package travel

// PlanRoute finds the path with the fewest shuttle hops from start to dest.
// The result includes both ends. A start equal to dest yields just the
// destination stop.
func PlanRoute(g Graph, start, dest Location) ([]ShuttleStop, error) {
	if start.IsZero() {
		return nil, &UnknownLocationError{Location: start}
	}
	if dest.IsZero() {
		return nil, &UnknownLocationError{Location: dest}
	}
	startStop, ok := g.Stop(start)
	if !ok {
		return nil, &UnknownLocationError{Location: start}
	}
	destStop, ok := g.Stop(dest)
	if !ok {
		return nil, &UnknownLocationError{Location: dest}
	}
	if start == dest {
		return []ShuttleStop{destStop}, nil
	}

	prev := map[Location]Location{}
	visited := map[Location]bool{start: true}
	queue := []Location{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(cur) {
			if visited[next] {
				continue
			}
			// Destinations that name no known stop are skipped here rather
			// than rejected when the graph is built.
			if _, ok := g.Stop(next); !ok {
				continue
			}
			visited[next] = true
			prev[next] = cur
			if next == dest {
				return walkBack(g, prev, startStop, dest), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, &RouteNotFoundError{From: start, To: dest}
}

func walkBack(g Graph, prev map[Location]Location, start ShuttleStop, dest Location) []ShuttleStop {
	reversed := []ShuttleStop{}
	for cur := dest; cur != start.Location(); cur = prev[cur] {
		s, _ := g.Stop(cur)
		reversed = append(reversed, s)
	}
	reversed = append(reversed, start)

	out := make([]ShuttleStop, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		out = append(out, reversed[i])
	}
	return out
}
