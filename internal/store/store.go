package store

import (
	"context"

	"github.com/gridlock-labs/lattice/internal/model"
)

// Store defines the persistence interface for work items and links.
type Store interface {
	// Work item CRUD
	CreateItem(ctx context.Context, item *model.WorkItem) error
	GetItem(ctx context.Context, id string) (*model.WorkItem, error)
	ListItems(ctx context.Context, filter model.ItemFilter) ([]*model.WorkItem, int, error) // returns items, total count, error
	UpdateItem(ctx context.Context, item *model.WorkItem) error
	DeleteItem(ctx context.Context, id string) error

	// Links
	AddLink(ctx context.Context, link *model.Link) error
	RemoveLink(ctx context.Context, id string) error
	ListLinks(ctx context.Context, workspaceID string) ([]*model.Link, error)

	// Snapshot returns all items and links of one workspace in a stable
	// order for the analysis engine. The engine recomputes from scratch
	// each call; nothing derived is ever written back.
	Snapshot(ctx context.Context, workspaceID string) ([]*model.WorkItem, []*model.Link, error)

	// ListWorkspaces returns the distinct workspace ids with any items,
	// ascending. Used by the sync exporter.
	ListWorkspaces(ctx context.Context) ([]string, error)

	// Lifecycle
	Close() error
}
