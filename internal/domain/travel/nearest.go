package travel

import "strings"

// NearestShuttle returns the stop on planet closest to pos by Euclidean
// distance. Ties go to the stop declared first.
func NearestShuttle(pos Point, planet string, g Graph) (ShuttleStop, error) {
	stops := g.StopsOnPlanet(planet)
	if strings.TrimSpace(planet) == "" || len(stops) == 0 {
		return ShuttleStop{}, &UnknownLocationError{Location: Location{Planet: planet}}
	}
	best := stops[0]
	bestDist := distSquared(pos, best.Coordinates)
	for _, s := range stops[1:] {
		if d := distSquared(pos, s.Coordinates); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, nil
}

func distSquared(a, b Point) int64 {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	return dx*dx + dy*dy
}
