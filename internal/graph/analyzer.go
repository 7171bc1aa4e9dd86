package graph

import (
	"sync"

	"github.com/gridlock-labs/lattice/internal/model"
)

// Analyzer runs the full dependency analysis over one immutable Graph.
// It is stateless apart from its configuration and safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer returns an Analyzer with the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze derives the complete report from a built Graph.
//
// Cycle detection, cycle-membership computation, health classification, and
// orphan detection have no data dependency on each other and run concurrently
// against the read-only graph. The topological sort needs the membership set
// (not the reported sequences, which can miss cross-edge participants); the
// critical-path and bottleneck passes both need the order but not each other,
// so they also run concurrently. The only possible failure is
// ErrTopoSortInvariant, an internal defect rather than an input error.
func (a *Analyzer) Analyze(g *Graph) (*model.AnalysisReport, error) {
	now := a.cfg.now()

	var (
		cycles  []model.Cycle
		cyclic  map[string]struct{}
		health  []model.LinkHealth
		orphans []string
	)
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		cycles = DetectCycles(g)
	}()
	go func() {
		defer wg.Done()
		cyclic = CycleNodeSet(g)
	}()
	go func() {
		defer wg.Done()
		health = ClassifyHealth(g, a.cfg.RiskWindow, now)
	}()
	go func() {
		defer wg.Done()
		orphans = Orphans(g)
	}()
	wg.Wait()

	order, err := TopoSort(g, cyclic)
	if err != nil {
		return nil, err
	}

	var (
		path        model.CriticalPath
		bottlenecks []model.Bottleneck
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		path = ComputeCriticalPath(g, order)
	}()
	go func() {
		defer wg.Done()
		bottlenecks = ComputeBottlenecks(g, order, cyclic, a.cfg)
	}()
	wg.Wait()

	if cycles == nil {
		cycles = []model.Cycle{}
	}
	return &model.AnalysisReport{
		CriticalPath:         path,
		Bottlenecks:          bottlenecks,
		CircularDependencies: cycles,
		EdgeHealth:           health,
		OrphanedItems:        orphans,
	}, nil
}

// Summarize derives dashboard aggregates from a snapshot and its report
// without re-running any analysis; the tier counts come straight from the
// report's edge health list.
func Summarize(items []*model.WorkItem, links []*model.Link, report *model.AnalysisReport) *model.DashboardSummary {
	s := &model.DashboardSummary{
		TotalItems:    len(items),
		TotalLinks:    len(links),
		ItemsByStatus: make(map[model.Status]int),
		CycleCount:    len(report.CircularDependencies),
		OrphanCount:   len(report.OrphanedItems),
		PathLength:    report.CriticalPath.TotalDuration,
	}
	for _, it := range items {
		s.ItemsByStatus[it.Status]++
	}
	for _, h := range report.EdgeHealth {
		switch h.Tier {
		case model.TierHealthy:
			s.HealthyLinks++
		case model.TierAtRisk:
			s.AtRiskLinks++
		case model.TierBlocked:
			s.BlockedLinks++
		}
	}
	return s
}
