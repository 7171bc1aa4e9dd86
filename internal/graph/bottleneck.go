package graph

import (
	"sort"

	"github.com/gridlock-labs/lattice/internal/model"
)

// ComputeBottlenecks counts, per item, how many items are transitively gated
// on it through blocking links.
//
// Items inside a cycle get their reachable set from a plain BFS over the
// cycle-inclusive blocking graph, since topological accumulation is
// ill-defined there; they are computed first so acyclic items that feed into
// a cycle can reuse the result. The acyclic remainder is then accumulated in
// one reverse-topological pass: reachable(n) is the union over direct
// successors s of {s} plus reachable(s).
//
// Only items with a positive count are reported, sorted by count descending
// with ties by ascending id. Items inside cycles are not reported.
func ComputeBottlenecks(g *Graph, order []string, cyclic map[string]struct{}, cfg Config) []model.Bottleneck {
	reach := make(map[string]map[string]struct{}, g.Len())

	for id := range cyclic {
		reach[id] = bfsReachable(g, id)
	}

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		set := make(map[string]struct{})
		for _, s := range g.BlockingSuccessors(id) {
			set[s] = struct{}{}
			for r := range reach[s] {
				set[r] = struct{}{}
			}
		}
		reach[id] = set
	}

	bottlenecks := make([]model.Bottleneck, 0, len(order))
	for _, id := range order {
		count := len(reach[id])
		if count == 0 {
			continue
		}
		bottlenecks = append(bottlenecks, model.Bottleneck{
			ItemID:       id,
			BlockedCount: count,
			Severity:     cfg.SeverityFor(count),
		})
	}

	sort.Slice(bottlenecks, func(i, j int) bool {
		if bottlenecks[i].BlockedCount != bottlenecks[j].BlockedCount {
			return bottlenecks[i].BlockedCount > bottlenecks[j].BlockedCount
		}
		return bottlenecks[i].ItemID < bottlenecks[j].ItemID
	})
	return bottlenecks
}

// bfsReachable collects every item reachable from start via blocking links,
// excluding start itself unless a cycle leads back to it.
func bfsReachable(g *Graph, start string) map[string]struct{} {
	visited := make(map[string]struct{})
	queue := append([]string(nil), g.BlockingSuccessors(start)...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		queue = append(queue, g.BlockingSuccessors(id)...)
	}
	return visited
}
