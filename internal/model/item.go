package model

import "time"

// Status represents the current state of a work item.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusBlocked, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// DefaultDuration is the duration assigned to items with no numeric estimate.
const DefaultDuration = 1.0

// WorkItem is the core work-item record, scoped to one workspace.
type WorkItem struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Duration    float64    `json:"duration"` // estimate in abstract units; 0 means "no estimate"
	Status      Status     `json:"status"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relational data -- populated by queries, not stored in the items table.
	Links []*Link `json:"links,omitempty"`
}

// EffectiveDuration returns the item's duration estimate, substituting the
// default when no estimate is present.
func (w *WorkItem) EffectiveDuration() float64 {
	if w.Duration <= 0 {
		return DefaultDuration
	}
	return w.Duration
}
