package memory

import (
	"sync"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"
)

type Store struct {
	mu    sync.RWMutex
	runs  map[string][]ports.NavigationRunRecord
	stops []travel.ShuttleStop
}

func NewStore() *Store {
	return &Store{
		runs: make(map[string][]ports.NavigationRunRecord),
	}
}

func (s *Store) SeedStops(stops []travel.ShuttleStop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops = append([]travel.ShuttleStop(nil), stops...)
}
