package model

import "time"

// LinkKind categorizes the relationship between two work items.
// The set is closed: analysis behavior depends on the kind, so unknown
// kinds are rejected at validation time.
type LinkKind string

const (
	LinkDependency  LinkKind = "dependency"
	LinkBlocks      LinkKind = "blocks"
	LinkComplements LinkKind = "complements"
	LinkRelates     LinkKind = "relates"
)

// String returns the string representation of the link kind.
func (k LinkKind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value.
func (k LinkKind) IsValid() bool {
	switch k {
	case LinkDependency, LinkBlocks, LinkComplements, LinkRelates:
		return true
	}
	return false
}

// IsBlocking reports whether the kind imposes a must-finish-before ordering.
// Blocking kinds participate in critical-path, bottleneck, and cycle analysis;
// non-blocking kinds only count toward orphan detection.
func (k LinkKind) IsBlocking() bool {
	return k == LinkDependency || k == LinkBlocks
}

// Link represents a directional typed relationship between two work items.
// source -> target means "target is gated on source" for blocking kinds.
type Link struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	SourceID    string    `json:"source_id"`
	TargetID    string    `json:"target_id"`
	Kind        LinkKind  `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}
