// Package sync exports periodic JSONL snapshots, one object per workspace,
// to a configured destination. Only raw items and links are exported;
// analysis results are derived data and are never persisted.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gridlock-labs/lattice/internal/store"
)

// header is the first JSONL record of a workspace export.
type header struct {
	Version   string    `json:"version"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Workspace string    `json:"workspace"`
	ItemCount int       `json:"item_count"`
	LinkCount int       `json:"link_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportWorkspaceJSONL writes one workspace's items and links as JSONL to w:
// a header line, then items, then links. The store's snapshot ordering
// (ascending id) is preserved, so everything after the timestamped header is
// stable for unchanged data.
func ExportWorkspaceJSONL(ctx context.Context, s store.Store, workspaceID string, w io.Writer) error {
	items, links, err := s.Snapshot(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("snapshot workspace %s: %w", workspaceID, err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:   "1",
		Type:      "header",
		Timestamp: time.Now().UTC(),
		Workspace: workspaceID,
		ItemCount: len(items),
		LinkCount: len(links),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, it := range items {
		if err := enc.Encode(record{Type: "item", Data: it}); err != nil {
			return fmt.Errorf("encode item %s: %w", it.ID, err)
		}
	}
	for _, l := range links {
		if err := enc.Encode(record{Type: "link", Data: l}); err != nil {
			return fmt.Errorf("encode link %s: %w", l.ID, err)
		}
	}

	return nil
}
