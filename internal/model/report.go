package model

// Severity buckets a bottleneck by how many downstream items it gates.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// HealthTier classifies a blocking link by how troubled it looks.
type HealthTier string

const (
	TierHealthy HealthTier = "healthy"
	TierAtRisk  HealthTier = "at_risk"
	TierBlocked HealthTier = "blocked"
)

// Cycle is an ordered sequence of at least two item ids forming a closed
// loop of blocking links.
type Cycle []string

// CriticalPath is the longest duration-weighted chain of blocking links,
// ordered source to sink.
type CriticalPath struct {
	Items         []string `json:"items"`
	TotalDuration float64  `json:"total_duration"`
}

// Bottleneck reports one item together with the number of items transitively
// gated on it through blocking links.
type Bottleneck struct {
	ItemID       string   `json:"item_id"`
	BlockedCount int      `json:"blocked_count"`
	Severity     Severity `json:"severity"`
}

// LinkHealth is the per-link health classification.
type LinkHealth struct {
	LinkID string     `json:"link_id"`
	Tier   HealthTier `json:"tier"`
}

// AnalysisReport is the full output of one dependency-graph analysis run.
type AnalysisReport struct {
	CriticalPath         CriticalPath `json:"critical_path"`
	Bottlenecks          []Bottleneck `json:"bottlenecks"`
	CircularDependencies []Cycle      `json:"circular_dependencies"`
	EdgeHealth           []LinkHealth `json:"edge_health"`
	OrphanedItems        []string     `json:"orphaned_items"`
}

// DashboardSummary holds aggregate counts derived from one analysis report.
type DashboardSummary struct {
	TotalItems    int            `json:"total_items"`
	TotalLinks    int            `json:"total_links"`
	ItemsByStatus map[Status]int `json:"items_by_status"`

	HealthyLinks int `json:"healthy_links"`
	AtRiskLinks  int `json:"at_risk_links"`
	BlockedLinks int `json:"blocked_links"`

	CycleCount  int     `json:"cycle_count"`
	OrphanCount int     `json:"orphan_count"`
	PathLength  float64 `json:"critical_path_duration"`
}

// SnapshotResponse is the response for the raw graph visualization endpoint.
type SnapshotResponse struct {
	Items []*WorkItem `json:"items"`
	Links []*Link     `json:"links"`
}
