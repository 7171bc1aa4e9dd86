package postgres

import (
	"database/sql"
	"time"

	"github.com/gridlock-labs/lattice/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanItem scans a single row into a model.WorkItem.
// The row must contain columns in the order defined by itemColumns.
func scanItem(row scannable) (*model.WorkItem, error) {
	var w model.WorkItem
	var (
		category  sql.NullString
		duration  sql.NullFloat64
		dueAt     sql.NullTime
		createdBy sql.NullString
	)

	err := row.Scan(
		&w.ID,
		&w.WorkspaceID,
		&w.Name,
		&category,
		&duration,
		&w.Status,
		&dueAt,
		&w.CreatedAt,
		&createdBy,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Category = category.String
	w.CreatedBy = createdBy.String
	// NULL duration means "no estimate"; the engine substitutes the default.
	w.Duration = duration.Float64

	if dueAt.Valid {
		t := dueAt.Time
		w.DueAt = &t
	}

	return &w, nil
}

// scanItemWithTotal scans a row that has a leading total_count column
// followed by the standard item columns. Used by queryListItems with
// COUNT(*) OVER().
func scanItemWithTotal(row scannable) (*model.WorkItem, int, error) {
	var w model.WorkItem
	var total int
	var (
		category  sql.NullString
		duration  sql.NullFloat64
		dueAt     sql.NullTime
		createdBy sql.NullString
	)

	err := row.Scan(
		&total,
		&w.ID,
		&w.WorkspaceID,
		&w.Name,
		&category,
		&duration,
		&w.Status,
		&dueAt,
		&w.CreatedAt,
		&createdBy,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	w.Category = category.String
	w.CreatedBy = createdBy.String
	w.Duration = duration.Float64

	if dueAt.Valid {
		t := dueAt.Time
		w.DueAt = &t
	}

	return &w, total, nil
}

// scanLinks drains rows into a link slice.
// The rows must contain columns in the order defined by linkColumns.
func scanLinks(rows *sql.Rows) ([]*model.Link, error) {
	var links []*model.Link
	for rows.Next() {
		var l model.Link
		var createdBy sql.NullString
		if err := rows.Scan(
			&l.ID,
			&l.WorkspaceID,
			&l.SourceID,
			&l.TargetID,
			&l.Kind,
			&l.CreatedAt,
			&createdBy,
		); err != nil {
			return nil, err
		}
		l.CreatedBy = createdBy.String
		links = append(links, &l)
	}
	return links, rows.Err()
}

// nullTimePtr converts a *time.Time to a sql.NullTime.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullFloat converts a float64 to sql.NullFloat64; zero means "no estimate"
// and is stored as null.
func nullFloat(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
