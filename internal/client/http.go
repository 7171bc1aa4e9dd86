package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gridlock-labs/lattice/internal/model"
)

// HTTPClient implements LatticeClient using the Lattice HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Work item CRUD ---

func (c *HTTPClient) CreateItem(ctx context.Context, req *CreateItemRequest) (*model.WorkItem, error) {
	var item model.WorkItem
	if err := c.doJSON(ctx, http.MethodPost, "/v1/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *HTTPClient) GetItem(ctx context.Context, id string) (*model.WorkItem, error) {
	var item model.WorkItem
	if err := c.doJSON(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *HTTPClient) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	q := url.Values{}
	if req.WorkspaceID != "" {
		q.Set("workspace_id", req.WorkspaceID)
	}
	if len(req.Status) > 0 {
		q.Set("status", strings.Join(req.Status, ","))
	}
	if len(req.Category) > 0 {
		q.Set("category", strings.Join(req.Category, ","))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListItemsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*model.WorkItem, error) {
	var item model.WorkItem
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/items/"+url.PathEscape(id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/items/"+url.PathEscape(id), nil, nil)
}

// --- Links ---

func (c *HTTPClient) AddLink(ctx context.Context, req *AddLinkRequest) (*model.Link, error) {
	var link model.Link
	if err := c.doJSON(ctx, http.MethodPost, "/v1/links", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) RemoveLink(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/links/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListLinks(ctx context.Context, workspaceID string) ([]*model.Link, error) {
	var resp struct {
		Links []*model.Link `json:"links"`
	}
	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/links"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Links, nil
}

// --- Analysis ---

func (c *HTTPClient) GetGraph(ctx context.Context, workspaceID string) (*model.SnapshotResponse, error) {
	var snap model.SnapshotResponse
	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/graph"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *HTTPClient) Analyze(ctx context.Context, workspaceID string) (*model.AnalysisReport, error) {
	var report model.AnalysisReport
	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/analysis"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context, workspaceID string) (*model.DashboardSummary, error) {
	var summary model.DashboardSummary
	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/dashboard"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with an optional JSON body and decodes the
// JSON response into result (when non-nil). Error responses become *APIError.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
