package graph

import "github.com/gridlock-labs/lattice/internal/model"

// DFS coloring states. Gray marks nodes on the current DFS path; hitting a
// gray node again means a back-edge closed a cycle.
const (
	white = iota
	gray
	black
)

// DetectCycles reports cycles in the blocking-link subgraph.
//
// It runs an iterative depth-first search with an explicit stack so large
// graphs cannot overflow the goroutine stack. Whenever a gray node is
// re-encountered, the cycle is extracted by copying the live DFS path from
// that node to the top. The scan restarts from every unvisited node in
// ascending id order, so every cyclic region yields at least one cycle and
// output is deterministic. An empty result means the blocking subgraph is
// acyclic.
//
// The walk only closes cycles on back-edges, so a node that joins a loop
// through a cross-edge to an already-finished node may not appear in any
// reported sequence. Full membership comes from CycleNodeSet.
func DetectCycles(g *Graph) []model.Cycle {
	color := make(map[string]int, g.Len())
	pos := make(map[string]int) // id -> index on path while gray

	var cycles []model.Cycle
	var path []string

	type frame struct {
		id   string
		next int // index of the next successor to visit
	}

	for _, root := range g.ItemIDs() {
		if color[root] != white {
			continue
		}

		color[root] = gray
		pos[root] = 0
		path = append(path[:0], root)
		frames := []frame{{id: root}}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			succ := g.BlockingSuccessors(f.id)

			if f.next < len(succ) {
				child := succ[f.next]
				f.next++

				switch color[child] {
				case white:
					color[child] = gray
					pos[child] = len(path)
					path = append(path, child)
					frames = append(frames, frame{id: child})
				case gray:
					// Back-edge: the path from child to the top is a cycle.
					cyc := make(model.Cycle, len(path)-pos[child])
					copy(cyc, path[pos[child]:])
					cycles = append(cycles, cyc)
				}
				continue
			}

			color[f.id] = black
			delete(pos, f.id)
			path = path[:len(path)-1]
			frames = frames[:len(frames)-1]
		}
	}

	return cycles
}

// CycleNodeSet returns the ids of every item that sits on some blocking
// cycle, computed as membership in a strongly connected component of size
// two or more. This is the exclusion set for topological sorting: it is
// derived independently of the reported cycle sequences because a node can
// reach a loop through a cross-edge the DFS walk never closes.
//
// Iterative Tarjan. Self-loops are rejected at build time, so single-node
// components are never cyclic.
func CycleNodeSet(g *Graph) map[string]struct{} {
	index := make(map[string]int, g.Len())
	low := make(map[string]int, g.Len())
	onStack := make(map[string]bool, g.Len())
	var stack []string
	next := 0

	set := make(map[string]struct{})

	type frame struct {
		id   string
		next int
	}

	for _, root := range g.ItemIDs() {
		if _, seen := index[root]; seen {
			continue
		}
		index[root] = next
		low[root] = next
		next++
		stack = append(stack, root)
		onStack[root] = true
		frames := []frame{{id: root}}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			succ := g.BlockingSuccessors(f.id)

			if f.next < len(succ) {
				child := succ[f.next]
				f.next++

				if _, seen := index[child]; !seen {
					index[child] = next
					low[child] = next
					next++
					stack = append(stack, child)
					onStack[child] = true
					frames = append(frames, frame{id: child})
				} else if onStack[child] && index[child] < low[f.id] {
					low[f.id] = index[child]
				}
				continue
			}

			if low[f.id] == index[f.id] {
				// f.id roots a component; pop its members off the Tarjan stack.
				var comp []string
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					comp = append(comp, top)
					if top == f.id {
						break
					}
				}
				if len(comp) > 1 {
					for _, id := range comp {
						set[id] = struct{}{}
					}
				}
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := &frames[len(frames)-1]
				if low[f.id] < low[parent.id] {
					low[parent.id] = low[f.id]
				}
			}
		}
	}
	return set
}
