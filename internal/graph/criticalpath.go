package graph

import "github.com/gridlock-labs/lattice/internal/model"

// ComputeCriticalPath finds the longest duration-weighted chain of blocking
// links through the topologically ordered items.
//
// For each item, earliest finish = own duration + max earliest finish over
// blocking predecessors (0 with no predecessors). The predecessor producing
// the max is recorded for path reconstruction, ties broken by lower id.
// The path ends at the item with the largest earliest finish, again ties
// broken by lower id, and is reconstructed by walking predecessor pointers
// back to a source. An empty order yields an empty path with duration 0.
func ComputeCriticalPath(g *Graph, order []string) model.CriticalPath {
	path := model.CriticalPath{Items: []string{}}
	if len(order) == 0 {
		return path
	}

	inOrder := make(map[string]bool, len(order))
	for _, id := range order {
		inOrder[id] = true
	}

	finish := make(map[string]float64, len(order))
	bestPred := make(map[string]string, len(order))

	for _, id := range order {
		var best float64
		var bestID string
		// Predecessors are ascending, so on equal finish times the first
		// (lowest id) wins.
		for _, p := range g.BlockingPredecessors(id) {
			if !inOrder[p] {
				continue // predecessor sits inside a cycle
			}
			if bestID == "" || finish[p] > best {
				best = finish[p]
				bestID = p
			}
		}
		finish[id] = g.Item(id).EffectiveDuration() + best
		if bestID != "" {
			bestPred[id] = bestID
		}
	}

	// Path endpoint: argmax earliest finish, lowest id on ties. The order
	// slice is not globally id-sorted, so scan ids ascending.
	var end string
	for _, id := range g.ItemIDs() {
		if !inOrder[id] {
			continue
		}
		if end == "" || finish[id] > finish[end] {
			end = id
		}
	}

	for id := end; id != ""; id = bestPred[id] {
		path.Items = append(path.Items, id)
	}
	reverse(path.Items)
	path.TotalDuration = finish[end]
	return path
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
