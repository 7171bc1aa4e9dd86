package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gridlock-labs/lattice/internal/events"
	"github.com/gridlock-labs/lattice/internal/idgen"
	"github.com/gridlock-labs/lattice/internal/model"
)

// addLinkRequest is the body for POST /v1/links.
type addLinkRequest struct {
	WorkspaceID string `json:"workspace_id"`
	SourceID    string `json:"source_id"`
	TargetID    string `json:"target_id"`
	Kind        string `json:"kind"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// handleAddLink handles POST /v1/links.
func (s *LatticeServer) handleAddLink(w http.ResponseWriter, r *http.Request) {
	var req addLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := idgen.NewLinkID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	link := &model.Link{
		ID:          id,
		WorkspaceID: req.WorkspaceID,
		SourceID:    req.SourceID,
		TargetID:    req.TargetID,
		Kind:        model.LinkKind(req.Kind),
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   req.CreatedBy,
	}

	if err := model.ValidateLink(link); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Both endpoints must live in the link's workspace.
	for _, itemID := range []string{link.SourceID, link.TargetID} {
		item, err := s.store.GetItem(r.Context(), itemID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get item")
			return
		}
		if item == nil || item.WorkspaceID != link.WorkspaceID {
			writeError(w, http.StatusBadRequest, "item "+itemID+" not found in workspace")
			return
		}
	}

	if err := s.store.AddLink(r.Context(), link); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add link")
		return
	}

	s.publish(r.Context(), events.TopicLinkAdded, events.LinkAdded{Link: link})
	writeJSON(w, http.StatusCreated, link)
}

// handleRemoveLink handles DELETE /v1/links/{id}.
func (s *LatticeServer) handleRemoveLink(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.RemoveLink(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "link not found")
		return
	}

	s.publish(r.Context(), events.TopicLinkRemoved, events.LinkRemoved{LinkID: id})
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleListLinks handles GET /v1/workspaces/{id}/links.
func (s *LatticeServer) handleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.store.ListLinks(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list links")
		return
	}
	if links == nil {
		links = []*model.Link{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"links": links,
		"total": len(links),
	})
}
