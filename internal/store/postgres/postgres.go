// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/gridlock-labs/lattice/internal/model"
	"github.com/gridlock-labs/lattice/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateItem(ctx context.Context, item *model.WorkItem) error {
	return queryCreateItem(ctx, s.db, item)
}

func (s *PostgresStore) GetItem(ctx context.Context, id string) (*model.WorkItem, error) {
	return queryGetItem(ctx, s.db, id)
}

func (s *PostgresStore) ListItems(ctx context.Context, filter model.ItemFilter) ([]*model.WorkItem, int, error) {
	return queryListItems(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateItem(ctx context.Context, item *model.WorkItem) error {
	return queryUpdateItem(ctx, s.db, item)
}

func (s *PostgresStore) DeleteItem(ctx context.Context, id string) error {
	return queryDeleteItem(ctx, s.db, id)
}

func (s *PostgresStore) AddLink(ctx context.Context, link *model.Link) error {
	return queryAddLink(ctx, s.db, link)
}

func (s *PostgresStore) RemoveLink(ctx context.Context, id string) error {
	return queryRemoveLink(ctx, s.db, id)
}

func (s *PostgresStore) ListLinks(ctx context.Context, workspaceID string) ([]*model.Link, error) {
	return queryListLinks(ctx, s.db, workspaceID)
}

// Snapshot reads one workspace's items and links in id order. The two reads
// are not transactional; the engine treats whatever it receives as one
// immutable snapshot, and a caller wanting fresher data simply calls again.
func (s *PostgresStore) Snapshot(ctx context.Context, workspaceID string) ([]*model.WorkItem, []*model.Link, error) {
	items, err := queryItemsByWorkspace(ctx, s.db, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot items: %w", err)
	}
	links, err := queryListLinks(ctx, s.db, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot links: %w", err)
	}
	return items, links, nil
}

func (s *PostgresStore) ListWorkspaces(ctx context.Context) ([]string, error) {
	return queryListWorkspaces(ctx, s.db)
}
