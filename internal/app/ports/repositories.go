package ports

import (
	"context"
	"time"

	"galaxyassist/internal/domain/travel"
)

type NavigationStatus string

const (
	NavigationCompleted NavigationStatus = "completed"
	NavigationFailed    NavigationStatus = "failed"
)

type NavigationRunRecord struct {
	RunID         string
	AgentID       string
	From          travel.Location
	To            travel.Location
	Legs          []travel.Leg
	CompletedLegs int
	Status        NavigationStatus
	Error         string
	StartedAt     time.Time
	FinishedAt    time.Time
}

type NavigationRunRepository interface {
	Save(ctx context.Context, run NavigationRunRecord) error
	ListByAgentID(ctx context.Context, agentID string, limit int) ([]NavigationRunRecord, error)
}

type ShuttleGraphSource interface {
	LoadStops(ctx context.Context) ([]travel.ShuttleStop, error)
}

type LootTable interface {
	LootForMob(ctx context.Context, mobName string) ([]string, error)
}
