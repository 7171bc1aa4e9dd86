package graph

import (
	"errors"
	"testing"
	"time"

	"github.com/gridlock-labs/lattice/internal/model"
)

func item(id string, duration float64, status model.Status) *model.WorkItem {
	return &model.WorkItem{
		ID:          id,
		WorkspaceID: "ws-test",
		Name:        "item " + id,
		Duration:    duration,
		Status:      status,
	}
}

func link(id, source, target string, kind model.LinkKind) *model.Link {
	return &model.Link{
		ID:          id,
		WorkspaceID: "ws-test",
		SourceID:    source,
		TargetID:    target,
		Kind:        kind,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func mustBuild(t *testing.T, items []*model.WorkItem, links []*model.Link) *Graph {
	t.Helper()
	g, err := Build(items, links)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

// diamondGraph is the fixture A->B, A->C, B->D, C->D with unit durations.
func diamondGraph(t *testing.T) *Graph {
	t.Helper()
	return mustBuild(t,
		[]*model.WorkItem{
			item("A", 1, model.StatusNotStarted),
			item("B", 1, model.StatusNotStarted),
			item("C", 1, model.StatusNotStarted),
			item("D", 1, model.StatusNotStarted),
		},
		[]*model.Link{
			link("ln-1", "A", "B", model.LinkDependency),
			link("ln-2", "A", "C", model.LinkDependency),
			link("ln-3", "B", "D", model.LinkDependency),
			link("ln-4", "C", "D", model.LinkDependency),
		},
	)
}

// triangleGraph is the fixture A->B->C->A, all blocks kind.
func triangleGraph(t *testing.T) *Graph {
	t.Helper()
	return mustBuild(t,
		[]*model.WorkItem{
			item("A", 1, model.StatusNotStarted),
			item("B", 1, model.StatusNotStarted),
			item("C", 1, model.StatusNotStarted),
		},
		[]*model.Link{
			link("ln-1", "A", "B", model.LinkBlocks),
			link("ln-2", "B", "C", model.LinkBlocks),
			link("ln-3", "C", "A", model.LinkBlocks),
		},
	)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildRejectsUnknownEndpoint(t *testing.T) {
	items := []*model.WorkItem{item("A", 1, model.StatusNotStarted)}

	for _, tc := range []struct {
		name string
		link *model.Link
	}{
		{"missing target", link("ln-1", "A", "ghost", model.LinkBlocks)},
		{"missing source", link("ln-1", "ghost", "A", model.LinkBlocks)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(items, []*model.Link{tc.link})
			if !errors.Is(err, ErrUnknownNodeReference) {
				t.Errorf("Build error = %v, want ErrUnknownNodeReference", err)
			}
		})
	}
}

func TestBuildRejectsSelfLoop(t *testing.T) {
	items := []*model.WorkItem{item("A", 1, model.StatusNotStarted)}
	_, err := Build(items, []*model.Link{link("ln-1", "A", "A", model.LinkRelates)})
	if !errors.Is(err, ErrSelfLoopEdge) {
		t.Errorf("Build error = %v, want ErrSelfLoopEdge", err)
	}
}

func TestBuildDeduplicatesExactLinks(t *testing.T) {
	g := mustBuild(t,
		[]*model.WorkItem{item("A", 1, model.StatusNotStarted), item("B", 1, model.StatusNotStarted)},
		[]*model.Link{
			link("ln-1", "A", "B", model.LinkBlocks),
			link("ln-2", "A", "B", model.LinkBlocks),  // exact dup, dropped
			link("ln-3", "A", "B", model.LinkRelates), // different kind, kept
		},
	)
	if got := len(g.Links()); got != 2 {
		t.Fatalf("got %d links after dedup, want 2", got)
	}
	if g.Links()[0].ID != "ln-1" {
		t.Errorf("dedup kept %s, want first occurrence ln-1", g.Links()[0].ID)
	}
}

func TestBuildBlockingAdjacencyExcludesNonBlocking(t *testing.T) {
	g := mustBuild(t,
		[]*model.WorkItem{item("A", 1, model.StatusNotStarted), item("B", 1, model.StatusNotStarted)},
		[]*model.Link{link("ln-1", "A", "B", model.LinkRelates)},
	)
	if got := g.BlockingSuccessors("A"); len(got) != 0 {
		t.Errorf("BlockingSuccessors(A) = %v, want empty for relates link", got)
	}
	if got := g.AllNeighbors("A"); !equalStrings(got, []string{"B"}) {
		t.Errorf("AllNeighbors(A) = %v, want [B]", got)
	}
	if got := g.AllNeighbors("B"); !equalStrings(got, []string{"A"}) {
		t.Errorf("AllNeighbors(B) = %v, want [A]", got)
	}
}

func TestBuildCountsDualKindPairOnce(t *testing.T) {
	// The same pair linked by both blocking kinds appears once in adjacency.
	g := mustBuild(t,
		[]*model.WorkItem{item("A", 1, model.StatusNotStarted), item("B", 1, model.StatusNotStarted)},
		[]*model.Link{
			link("ln-1", "A", "B", model.LinkBlocks),
			link("ln-2", "A", "B", model.LinkDependency),
		},
	)
	if got := g.BlockingSuccessors("A"); !equalStrings(got, []string{"B"}) {
		t.Errorf("BlockingSuccessors(A) = %v, want [B]", got)
	}
	if got := len(g.Links()); got != 2 {
		t.Errorf("got %d links, want 2 (distinct kinds kept for display)", got)
	}
}

func TestGraphAccessorsOnDiamond(t *testing.T) {
	g := diamondGraph(t)
	if got := g.BlockingSuccessors("A"); !equalStrings(got, []string{"B", "C"}) {
		t.Errorf("BlockingSuccessors(A) = %v, want [B C]", got)
	}
	if got := g.BlockingPredecessors("D"); !equalStrings(got, []string{"B", "C"}) {
		t.Errorf("BlockingPredecessors(D) = %v, want [B C]", got)
	}
	if got := g.ItemIDs(); !equalStrings(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("ItemIDs() = %v, want ascending [A B C D]", got)
	}
}
