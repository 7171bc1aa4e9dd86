package model

// ItemFilter holds criteria for querying work items.
type ItemFilter struct {
	WorkspaceID string   `json:"workspace_id,omitempty"`
	Status      []Status `json:"status,omitempty"`
	Category    []string `json:"category,omitempty"`
	Search      string   `json:"search,omitempty"` // substring match on name
	Sort        string   `json:"sort,omitempty"`   // e.g. "-duration", "created_at"; prefix "-" = descending
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}
