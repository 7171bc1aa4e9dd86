package graph

import (
	"fmt"
	"sort"
)

// TopoSort orders the items outside the excluded set using Kahn's algorithm.
// Ties among ready items are broken by ascending id so the order is
// reproducible across runs. Links touching an excluded item are ignored.
//
// If the resulting order omits items that were not excluded, the exclusion
// set missed part of a cycle; that is an internal defect reported as
// ErrTopoSortInvariant.
func TopoSort(g *Graph, excluded map[string]struct{}) ([]string, error) {
	included := 0
	inDeg := make(map[string]int, g.Len())
	for _, id := range g.ItemIDs() {
		if _, skip := excluded[id]; skip {
			continue
		}
		included++
		deg := 0
		for _, p := range g.BlockingPredecessors(id) {
			if _, skip := excluded[p]; !skip {
				deg++
			}
		}
		inDeg[id] = deg
	}

	// Ready items kept sorted ascending; ItemIDs is already sorted, so the
	// initial seed needs no extra sort.
	var ready []string
	for _, id := range g.ItemIDs() {
		if _, skip := excluded[id]; skip {
			continue
		}
		if inDeg[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, included)
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		for _, s := range g.BlockingSuccessors(id) {
			if _, skip := excluded[s]; skip {
				continue
			}
			inDeg[s]--
			if inDeg[s] == 0 {
				i := sort.SearchStrings(ready, s)
				ready = append(ready, "")
				copy(ready[i+1:], ready[i:])
				ready[i] = s
			}
		}
	}

	if len(order) != included {
		return nil, fmt.Errorf("%w: ordered %d of %d items outside the exclusion set",
			ErrTopoSortInvariant, len(order), included)
	}
	return order, nil
}
