package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gridlock-labs/lattice/internal/model"
)

// itemColumns is the column list used for SELECT statements on the items table.
const itemColumns = `id, workspace_id, name, category, duration, status,
	due_at, created_at, created_by, updated_at`

// linkColumns is the column list used for SELECT statements on the links table.
const linkColumns = `id, workspace_id, source_id, target_id, kind, created_at, created_by`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateItem(ctx context.Context, db executor, w *model.WorkItem) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO items (
			id, workspace_id, name, category, duration, status,
			due_at, created_at, created_by, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10
		)`,
		w.ID,
		w.WorkspaceID,
		w.Name,
		nullString(w.Category),
		nullFloat(w.Duration),
		string(w.Status),
		nullTimePtr(w.DueAt),
		w.CreatedAt,
		nullString(w.CreatedBy),
		w.UpdatedAt,
	)
	return err
}

func queryGetItem(ctx context.Context, db executor, id string) (*model.WorkItem, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	w, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	links, err := queryLinksForItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	w.Links = links

	return w, nil
}

func queryListItems(ctx context.Context, db executor, filter model.ItemFilter) ([]*model.WorkItem, int, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.WorkspaceID != "" {
		where = append(where, "workspace_id = "+arg(filter.WorkspaceID))
	}
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = arg(string(s))
		}
		where = append(where, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(filter.Category) > 0 {
		placeholders := make([]string, len(filter.Category))
		for i, c := range filter.Category {
			placeholders[i] = arg(c)
		}
		where = append(where, "category IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.Search != "" {
		where = append(where, "name ILIKE "+arg("%"+filter.Search+"%"))
	}

	query := `SELECT COUNT(*) OVER() AS total_count, ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + parseSortClause(filter.Sort)
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		items []*model.WorkItem
		total int
	)
	for rows.Next() {
		w, n, err := scanItemWithTotal(rows)
		if err != nil {
			return nil, 0, err
		}
		total = n
		items = append(items, w)
	}
	return items, total, rows.Err()
}

// sortColumns is the whitelist of sortable columns; anything else falls back
// to the default.
var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"due_at":     true,
	"duration":   true,
	"name":       true,
	"status":     true,
}

// parseSortClause converts a user-supplied sort field into a safe ORDER BY
// clause. A "-" prefix means descending.
func parseSortClause(sort string) string {
	desc := strings.HasPrefix(sort, "-")
	col := strings.TrimPrefix(sort, "-")
	if !sortColumns[col] {
		return "created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func queryUpdateItem(ctx context.Context, db executor, w *model.WorkItem) error {
	res, err := db.ExecContext(ctx, `
		UPDATE items SET
			name = $2, category = $3, duration = $4, status = $5,
			due_at = $6, updated_at = $7
		WHERE id = $1`,
		w.ID,
		w.Name,
		nullString(w.Category),
		nullFloat(w.Duration),
		string(w.Status),
		nullTimePtr(w.DueAt),
		w.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item %s not found", w.ID)
	}
	return nil
}

func queryDeleteItem(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item %s not found", id)
	}
	return nil
}

func queryAddLink(ctx context.Context, db executor, l *model.Link) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO links (id, workspace_id, source_id, target_id, kind, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID,
		l.WorkspaceID,
		l.SourceID,
		l.TargetID,
		string(l.Kind),
		l.CreatedAt,
		nullString(l.CreatedBy),
	)
	return err
}

func queryRemoveLink(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("link %s not found", id)
	}
	return nil
}

func queryListLinks(ctx context.Context, db executor, workspaceID string) ([]*model.Link, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE workspace_id = $1 ORDER BY id`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLinks(rows)
}

func queryLinksForItem(ctx context.Context, db executor, itemID string) ([]*model.Link, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE source_id = $1 OR target_id = $1 ORDER BY id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLinks(rows)
}

func queryItemsByWorkspace(ctx context.Context, db executor, workspaceID string) ([]*model.WorkItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE workspace_id = $1 ORDER BY id`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.WorkItem
	for rows.Next() {
		w, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func queryListWorkspaces(ctx context.Context, db executor) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT workspace_id FROM items ORDER BY workspace_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
