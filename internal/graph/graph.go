// Package graph implements the dependency graph analysis engine: it builds an
// immutable adjacency-list snapshot of one workspace's work items and typed
// links, then derives critical-path, bottleneck, cycle, health, and orphan
// results from it. The engine is a pure function of its input snapshot and
// keeps no state between calls.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gridlock-labs/lattice/internal/model"
)

// Build-time validation failures. Both indicate malformed caller input and
// abort the whole analysis; no partial report is produced.
var (
	// ErrUnknownNodeReference is returned when a link endpoint does not
	// reference an item in the snapshot.
	ErrUnknownNodeReference = errors.New("unknown node reference")

	// ErrSelfLoopEdge is returned when a link's source and target are
	// the same item.
	ErrSelfLoopEdge = errors.New("self-loop edge")
)

// ErrTopoSortInvariant indicates an internal defect in cycle-exclusion logic:
// the topological order omitted items that are not part of any detected cycle.
// It is never caused by valid input and should be logged as fatal, not retried.
var ErrTopoSortInvariant = errors.New("topological sort invariant violation")

// Graph is an immutable adjacency-list view of one workspace snapshot.
// All adjacency slices are sorted by id and must be treated as read-only;
// multiple goroutines may analyze the same Graph concurrently.
type Graph struct {
	items map[string]*model.WorkItem
	ids   []string // all item ids, ascending
	links []*model.Link

	blockingSucc map[string][]string // dependency/blocks kinds only
	blockingPred map[string][]string
	allNeighbors map[string][]string // every kind, both directions
}

// Build validates and assembles a node/edge snapshot into a Graph.
// It fails with ErrUnknownNodeReference if a link endpoint is missing from the
// item set and with ErrSelfLoopEdge if a link's source equals its target.
// Exact duplicate links (same source, target, kind) are dropped, keeping the
// first occurrence.
func Build(items []*model.WorkItem, links []*model.Link) (*Graph, error) {
	g := &Graph{
		items:        make(map[string]*model.WorkItem, len(items)),
		blockingSucc: make(map[string][]string),
		blockingPred: make(map[string][]string),
		allNeighbors: make(map[string][]string),
	}

	for _, it := range items {
		if _, ok := g.items[it.ID]; ok {
			continue // first occurrence wins
		}
		g.items[it.ID] = it
		g.ids = append(g.ids, it.ID)
	}
	sort.Strings(g.ids)

	seen := make(map[[3]string]bool, len(links))
	for _, l := range links {
		if l.SourceID == l.TargetID {
			return nil, fmt.Errorf("%w: link %s connects %s to itself", ErrSelfLoopEdge, l.ID, l.SourceID)
		}
		if _, ok := g.items[l.SourceID]; !ok {
			return nil, fmt.Errorf("%w: link %s source %s not in snapshot", ErrUnknownNodeReference, l.ID, l.SourceID)
		}
		if _, ok := g.items[l.TargetID]; !ok {
			return nil, fmt.Errorf("%w: link %s target %s not in snapshot", ErrUnknownNodeReference, l.ID, l.TargetID)
		}

		key := [3]string{l.SourceID, l.TargetID, string(l.Kind)}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.links = append(g.links, l)

		if l.Kind.IsBlocking() {
			g.blockingSucc[l.SourceID] = append(g.blockingSucc[l.SourceID], l.TargetID)
			g.blockingPred[l.TargetID] = append(g.blockingPred[l.TargetID], l.SourceID)
		}
		g.allNeighbors[l.SourceID] = append(g.allNeighbors[l.SourceID], l.TargetID)
		g.allNeighbors[l.TargetID] = append(g.allNeighbors[l.TargetID], l.SourceID)
	}

	// Sort and dedupe adjacency so traversal order is deterministic and a
	// pair linked by both "dependency" and "blocks" counts once.
	for _, adj := range []map[string][]string{g.blockingSucc, g.blockingPred, g.allNeighbors} {
		for id, list := range adj {
			adj[id] = sortUnique(list)
		}
	}

	return g, nil
}

// Item returns the work item with the given id, or nil.
func (g *Graph) Item(id string) *model.WorkItem {
	return g.items[id]
}

// ItemIDs returns all item ids in ascending order.
func (g *Graph) ItemIDs() []string {
	return g.ids
}

// Links returns the deduplicated link set in input order.
func (g *Graph) Links() []*model.Link {
	return g.links
}

// BlockingSuccessors returns the ids directly gated on id, ascending.
func (g *Graph) BlockingSuccessors(id string) []string {
	return g.blockingSucc[id]
}

// BlockingPredecessors returns the ids directly gating id, ascending.
func (g *Graph) BlockingPredecessors(id string) []string {
	return g.blockingPred[id]
}

// AllNeighbors returns every item connected to id by a link of any kind,
// in either direction, ascending.
func (g *Graph) AllNeighbors(id string) []string {
	return g.allNeighbors[id]
}

// Len returns the number of items in the graph.
func (g *Graph) Len() int {
	return len(g.ids)
}

func sortUnique(ids []string) []string {
	sort.Strings(ids)
	out := ids[:0]
	for _, id := range ids {
		if len(out) == 0 || id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
