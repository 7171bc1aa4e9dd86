package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gridlock-labs/lattice/internal/events"
	"github.com/gridlock-labs/lattice/internal/graph"
	"github.com/gridlock-labs/lattice/internal/model"
)

// handleGetGraph handles GET /v1/workspaces/{id}/graph. It returns the raw
// snapshot the analysis runs on: every item and link in the workspace.
func (s *LatticeServer) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	items, links, err := s.store.Snapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to snapshot workspace")
		return
	}
	if items == nil {
		items = []*model.WorkItem{}
	}
	if links == nil {
		links = []*model.Link{}
	}
	writeJSON(w, http.StatusOK, model.SnapshotResponse{Items: items, Links: links})
}

// handleAnalyze handles GET /v1/workspaces/{id}/analysis. It snapshots the
// workspace, builds the graph, and returns the full analysis report.
func (s *LatticeServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("id")
	items, links, report, err := s.analyze(r.Context(), workspaceID)
	if err != nil {
		s.writeAnalysisError(w, workspaceID, err)
		return
	}

	s.publish(r.Context(), events.TopicAnalysisCompleted, events.AnalysisCompleted{
		WorkspaceID: workspaceID,
		Summary:     graph.Summarize(items, links, report),
	})
	writeJSON(w, http.StatusOK, report)
}

// handleDashboard handles GET /v1/workspaces/{id}/dashboard. It runs a single
// analysis and derives the summary counts from the report.
func (s *LatticeServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("id")
	items, links, report, err := s.analyze(r.Context(), workspaceID)
	if err != nil {
		s.writeAnalysisError(w, workspaceID, err)
		return
	}
	writeJSON(w, http.StatusOK, graph.Summarize(items, links, report))
}

// analyze snapshots a workspace and runs the full dependency analysis on it.
func (s *LatticeServer) analyze(ctx context.Context, workspaceID string) ([]*model.WorkItem, []*model.Link, *model.AnalysisReport, error) {
	items, links, err := s.store.Snapshot(ctx, workspaceID)
	if err != nil {
		return nil, nil, nil, err
	}

	g, err := graph.Build(items, links)
	if err != nil {
		return nil, nil, nil, err
	}

	report, err := graph.NewAnalyzer(s.analysis).Analyze(g)
	if err != nil {
		return nil, nil, nil, err
	}
	return items, links, report, nil
}

// writeAnalysisError maps analysis pipeline failures to HTTP responses.
// Malformed input (dangling or self-referencing links) is the caller's
// fault; a sort invariant violation is a defect and is logged as such.
func (s *LatticeServer) writeAnalysisError(w http.ResponseWriter, workspaceID string, err error) {
	switch {
	case errors.Is(err, graph.ErrUnknownNodeReference), errors.Is(err, graph.ErrSelfLoopEdge):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, graph.ErrTopoSortInvariant):
		slog.Error("analysis invariant violated", "workspace_id", workspaceID, "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
	default:
		writeError(w, http.StatusInternalServerError, "failed to analyze workspace")
	}
}
