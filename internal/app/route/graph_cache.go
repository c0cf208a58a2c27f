package route

import (
	"context"
	"fmt"
	"sync"
	"time"

	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"
)

type GraphProvider interface {
	Graph(ctx context.Context) (travel.Graph, error)
}

// CachedGraph builds the travel graph from a source and keeps it for TTL.
// A zero TTL keeps the first successful build forever.
type CachedGraph struct {
	Source ports.ShuttleGraphSource
	TTL    time.Duration
	Now    func() time.Time

	mu       sync.Mutex
	graph    travel.Graph
	loaded   bool
	loadedAt time.Time
}

func NewCachedGraph(source ports.ShuttleGraphSource, ttl time.Duration) *CachedGraph {
	return &CachedGraph{Source: source, TTL: ttl, Now: time.Now}
}

func (c *CachedGraph) Graph(ctx context.Context) (travel.Graph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.loaded && (c.TTL <= 0 || now.Sub(c.loadedAt) < c.TTL) {
		return c.graph, nil
	}
	stops, err := c.Source.LoadStops(ctx)
	if err != nil {
		return travel.Graph{}, fmt.Errorf("load shuttle stops: %w", err)
	}
	g, err := travel.NewGraph(stops)
	if err != nil {
		return travel.Graph{}, err
	}
	c.graph = g
	c.loaded = true
	c.loadedAt = now
	return g, nil
}

func (c *CachedGraph) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

func (c *CachedGraph) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
