package graph

import (
	"sort"
	"time"

	"github.com/gridlock-labs/lattice/internal/model"
)

// ClassifyHealth assigns a health tier to every blocking link, independent of
// the path and bottleneck analyses.
//
//   - blocked: the source is not completed while the target is already
//     in progress or in review, meaning work proceeds on an unmet
//     precondition.
//   - at_risk: the source is in progress and the target's due date falls
//     within the risk window of the evaluation time (overdue included).
//   - healthy: everything else; a completed source is always healthy
//     regardless of the target.
//
// Non-blocking links carry no ordering and are not classified. Output is
// sorted by link id.
func ClassifyHealth(g *Graph, riskWindow time.Duration, now time.Time) []model.LinkHealth {
	health := make([]model.LinkHealth, 0, len(g.Links()))
	for _, l := range g.Links() {
		if !l.Kind.IsBlocking() {
			continue
		}
		health = append(health, model.LinkHealth{
			LinkID: l.ID,
			Tier:   classifyLink(g.Item(l.SourceID), g.Item(l.TargetID), riskWindow, now),
		})
	}
	sort.Slice(health, func(i, j int) bool {
		return health[i].LinkID < health[j].LinkID
	})
	return health
}

func classifyLink(source, target *model.WorkItem, riskWindow time.Duration, now time.Time) model.HealthTier {
	if source.Status == model.StatusCompleted {
		return model.TierHealthy
	}
	if target.Status == model.StatusInProgress || target.Status == model.StatusReview {
		return model.TierBlocked
	}
	if source.Status == model.StatusInProgress && target.DueAt != nil && !target.DueAt.After(now.Add(riskWindow)) {
		return model.TierAtRisk
	}
	return model.TierHealthy
}
