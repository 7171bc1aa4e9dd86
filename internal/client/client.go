// Package client provides a transport-agnostic interface for the Lattice
// service and an HTTP/JSON implementation that talks to the Lattice REST API.
package client

import (
	"context"
	"time"

	"github.com/gridlock-labs/lattice/internal/model"
)

// LatticeClient is the interface that all lx CLI commands use to communicate
// with the Lattice server. It is implemented by HTTPClient and can be backed
// by any transport.
type LatticeClient interface {
	// Work item CRUD
	CreateItem(ctx context.Context, req *CreateItemRequest) (*model.WorkItem, error)
	GetItem(ctx context.Context, id string) (*model.WorkItem, error)
	ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error)
	UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*model.WorkItem, error)
	DeleteItem(ctx context.Context, id string) error

	// Links
	AddLink(ctx context.Context, req *AddLinkRequest) (*model.Link, error)
	RemoveLink(ctx context.Context, id string) error
	ListLinks(ctx context.Context, workspaceID string) ([]*model.Link, error)

	// Analysis
	GetGraph(ctx context.Context, workspaceID string) (*model.SnapshotResponse, error)
	Analyze(ctx context.Context, workspaceID string) (*model.AnalysisReport, error)
	Dashboard(ctx context.Context, workspaceID string) (*model.DashboardSummary, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateItemRequest holds parameters for creating a work item.
type CreateItemRequest struct {
	WorkspaceID string     `json:"workspace_id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Duration    float64    `json:"duration,omitempty"`
	Status      string     `json:"status,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

// ListItemsRequest holds parameters for listing work items.
type ListItemsRequest struct {
	WorkspaceID string   `json:"workspace_id,omitempty"`
	Status      []string `json:"status,omitempty"`
	Category    []string `json:"category,omitempty"`
	Search      string   `json:"search,omitempty"`
	Sort        string   `json:"sort,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}

// ListItemsResponse is the response from ListItems.
type ListItemsResponse struct {
	Items []*model.WorkItem `json:"items"`
	Total int               `json:"total"`
}

// UpdateItemRequest holds parameters for updating a work item. Nil fields are
// left unchanged.
type UpdateItemRequest struct {
	Name     *string    `json:"name,omitempty"`
	Category *string    `json:"category,omitempty"`
	Duration *float64   `json:"duration,omitempty"`
	Status   *string    `json:"status,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`
}

// AddLinkRequest holds parameters for adding a link.
type AddLinkRequest struct {
	WorkspaceID string `json:"workspace_id"`
	SourceID    string `json:"source_id"`
	TargetID    string `json:"target_id"`
	Kind        string `json:"kind"`
	CreatedBy   string `json:"created_by,omitempty"`
}
