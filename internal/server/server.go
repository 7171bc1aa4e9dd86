// Package server exposes the Lattice HTTP/JSON API: work-item and link CRUD
// plus the per-workspace dependency analysis endpoints.
package server

import (
	"context"
	"log/slog"

	"github.com/gridlock-labs/lattice/internal/events"
	"github.com/gridlock-labs/lattice/internal/graph"
	"github.com/gridlock-labs/lattice/internal/store"
)

// LatticeServer holds the server's dependencies and implements every HTTP handler.
type LatticeServer struct {
	store     store.Store
	publisher events.Publisher
	analysis  graph.Config
}

// NewLatticeServer returns a new LatticeServer backed by the given store and
// publisher, analyzing with the given configuration.
func NewLatticeServer(s store.Store, p events.Publisher, analysis graph.Config) *LatticeServer {
	return &LatticeServer{
		store:     s,
		publisher: p,
		analysis:  analysis,
	}
}

// publish emits an event to the bus. Publication is best-effort; failures are
// logged but do not block the caller.
func (s *LatticeServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
