package sync

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/gridlock-labs/lattice/internal/model"
)

// mockStore is an in-memory store.Store for exercising export and scheduling.
type mockStore struct {
	items map[string]*model.WorkItem
	links map[string]*model.Link
}

func newMockStore() *mockStore {
	return &mockStore{
		items: make(map[string]*model.WorkItem),
		links: make(map[string]*model.Link),
	}
}

func (m *mockStore) CreateItem(_ context.Context, item *model.WorkItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockStore) GetItem(_ context.Context, id string) (*model.WorkItem, error) {
	return m.items[id], nil
}

func (m *mockStore) ListItems(_ context.Context, filter model.ItemFilter) ([]*model.WorkItem, int, error) {
	var result []*model.WorkItem
	for _, it := range m.items {
		if filter.WorkspaceID != "" && it.WorkspaceID != filter.WorkspaceID {
			continue
		}
		result = append(result, it)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) UpdateItem(_ context.Context, item *model.WorkItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockStore) DeleteItem(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockStore) AddLink(_ context.Context, link *model.Link) error {
	m.links[link.ID] = link
	return nil
}

func (m *mockStore) RemoveLink(_ context.Context, id string) error {
	if _, ok := m.links[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.links, id)
	return nil
}

func (m *mockStore) ListLinks(_ context.Context, workspaceID string) ([]*model.Link, error) {
	var result []*model.Link
	for _, l := range m.links {
		if l.WorkspaceID == workspaceID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) Snapshot(_ context.Context, workspaceID string) ([]*model.WorkItem, []*model.Link, error) {
	var items []*model.WorkItem
	for _, it := range m.items {
		if it.WorkspaceID == workspaceID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	links, _ := m.ListLinks(context.Background(), workspaceID)
	return items, links, nil
}

func (m *mockStore) ListWorkspaces(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, it := range m.items {
		if !seen[it.WorkspaceID] {
			seen[it.WorkspaceID] = true
			result = append(result, it.WorkspaceID)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockStore) Close() error { return nil }

// nonEmptyLines splits s on newlines, dropping blank lines.
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
