package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gridlock-labs/lattice/internal/events"
	"github.com/gridlock-labs/lattice/internal/idgen"
	"github.com/gridlock-labs/lattice/internal/model"
)

// createItemRequest is the body for POST /v1/items.
type createItemRequest struct {
	WorkspaceID string     `json:"workspace_id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Duration    float64    `json:"duration,omitempty"`
	Status      string     `json:"status,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

// handleCreateItem handles POST /v1/items.
func (s *LatticeServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := idgen.NewItemID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	status := model.Status(req.Status)
	if req.Status == "" {
		status = model.StatusNotStarted
	}

	now := time.Now().UTC()
	item := &model.WorkItem{
		ID:          id,
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Category:    req.Category,
		Duration:    req.Duration,
		Status:      status,
		DueAt:       req.DueAt,
		CreatedAt:   now,
		CreatedBy:   req.CreatedBy,
		UpdatedAt:   now,
	}

	if err := model.ValidateWorkItem(item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.CreateItem(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	s.publish(r.Context(), events.TopicItemCreated, events.ItemCreated{Item: item})
	writeJSON(w, http.StatusCreated, item)
}

// handleListItems handles GET /v1/items.
func (s *LatticeServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.ItemFilter{
		WorkspaceID: q.Get("workspace_id"),
		Search:      q.Get("search"),
		Sort:        q.Get("sort"),
		Limit:       100,
	}
	if v := q.Get("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			filter.Status = append(filter.Status, model.Status(s))
		}
	}
	if v := q.Get("category"); v != "" {
		filter.Category = strings.Split(v, ",")
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	items, total, err := s.store.ListItems(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []*model.WorkItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

// handleGetItem handles GET /v1/items/{id}.
func (s *LatticeServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// updateItemRequest is the body for PATCH /v1/items/{id}.
// Pointer fields distinguish "not provided" from zero values.
type updateItemRequest struct {
	Name     *string    `json:"name,omitempty"`
	Category *string    `json:"category,omitempty"`
	Duration *float64   `json:"duration,omitempty"`
	Status   *string    `json:"status,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`
}

// handleUpdateItem handles PATCH /v1/items/{id}.
func (s *LatticeServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.store.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	changes := make(map[string]any)
	if req.Name != nil {
		item.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
		changes["category"] = *req.Category
	}
	if req.Duration != nil {
		item.Duration = *req.Duration
		changes["duration"] = *req.Duration
	}
	if req.Status != nil {
		item.Status = model.Status(*req.Status)
		changes["status"] = *req.Status
	}
	if req.DueAt != nil {
		item.DueAt = req.DueAt
		changes["due_at"] = *req.DueAt
	}
	item.UpdatedAt = time.Now().UTC()

	if err := model.ValidateWorkItem(item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateItem(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	s.publish(r.Context(), events.TopicItemUpdated, events.ItemUpdated{Item: item, Changes: changes})
	writeJSON(w, http.StatusOK, item)
}

// handleDeleteItem handles DELETE /v1/items/{id}.
func (s *LatticeServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := s.store.DeleteItem(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	s.publish(r.Context(), events.TopicItemDeleted, events.ItemDeleted{
		ItemID:      id,
		WorkspaceID: item.WorkspaceID,
	})
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
