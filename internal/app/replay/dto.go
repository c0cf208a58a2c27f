package replay

import (
	"time"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"
)

type Request struct {
	AgentID      string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
	Status       string
}

type Response struct {
	Runs        []RunView        `json:"runs"`
	LastArrival *travel.Location `json:"last_arrival,omitempty"`
}

type RunView struct {
	RunID         string                 `json:"run_id"`
	From          travel.Location        `json:"from"`
	To            travel.Location        `json:"to"`
	Legs          []travel.Leg           `json:"legs"`
	CompletedLegs int                    `json:"completed_legs"`
	Status        ports.NavigationStatus `json:"status"`
	Error         string                 `json:"error,omitempty"`
	StartedAt     time.Time              `json:"started_at"`
	FinishedAt    time.Time              `json:"finished_at"`
}
