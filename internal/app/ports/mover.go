package ports

import "context"

// Mover drives the game character. Implementations block until the game
// reports the move finished or failed.
type Mover interface {
	TravelToCity(ctx context.Context, agentID, city string) error
	WalkToCoords(ctx context.Context, agentID string, x, y int) error
}
