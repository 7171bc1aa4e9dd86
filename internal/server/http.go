package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *LatticeServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/items", s.handleCreateItem)
	mux.HandleFunc("GET /v1/items", s.handleListItems)
	mux.HandleFunc("GET /v1/items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /v1/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /v1/items/{id}", s.handleDeleteItem)
	mux.HandleFunc("POST /v1/links", s.handleAddLink)
	mux.HandleFunc("DELETE /v1/links/{id}", s.handleRemoveLink)
	mux.HandleFunc("GET /v1/workspaces/{id}/links", s.handleListLinks)
	mux.HandleFunc("GET /v1/workspaces/{id}/graph", s.handleGetGraph)
	mux.HandleFunc("GET /v1/workspaces/{id}/analysis", s.handleAnalyze)
	mux.HandleFunc("GET /v1/workspaces/{id}/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *LatticeServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
