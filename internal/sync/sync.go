package sync

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gridlock-labs/lattice/internal/store"
)

// Destination is the interface for a sync target. Each workspace's snapshot
// is written separately so destinations can key their storage per workspace.
type Destination interface {
	// Write stores one workspace's JSONL snapshot.
	Write(ctx context.Context, workspaceID string, data []byte) error
}

// Scheduler runs periodic exports to one or more destinations.
type Scheduler struct {
	store        store.Store
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports from the store to the given
// destinations at the specified interval.
func NewScheduler(s store.Store, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:        s,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic sync. It runs an initial sync immediately, then
// on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current sync (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	// Run once immediately at startup.
	s.syncOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncOnce(ctx)
		}
	}
}

// syncOnce exports every workspace and writes each snapshot to every
// destination. A failing workspace or destination is logged and skipped so
// one bad export cannot starve the rest.
func (s *Scheduler) syncOnce(ctx context.Context) {
	workspaces, err := s.store.ListWorkspaces(ctx)
	if err != nil {
		s.logger.Error("sync list workspaces failed", "err", err)
		return
	}

	var total int
	for _, ws := range workspaces {
		var buf bytes.Buffer
		if err := ExportWorkspaceJSONL(ctx, s.store, ws, &buf); err != nil {
			s.logger.Error("sync export failed", "workspace", ws, "err", err)
			continue
		}
		data := buf.Bytes()
		total += len(data)

		for i, dest := range s.destinations {
			if err := dest.Write(ctx, ws, data); err != nil {
				s.logger.Error("sync destination write failed",
					"workspace", ws, "destination", fmt.Sprintf("%d", i), "err", err)
			}
		}
	}

	s.logger.Info("sync completed",
		"workspaces", len(workspaces), "destinations", len(s.destinations), "bytes", total)
}
