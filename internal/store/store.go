// Package store opens the configured session backend and runs its schema
// migrations. The API server and tripctl share it so both see the same
// database layout.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/migrations"
)

// Options selects and locates a session backend.
type Options struct {
	// Kind is memory, postgres or sqlite.
	Kind string
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string
	// SQLitePath is the SQLite database file.
	SQLitePath string
}

// Store is an open session backend.
type Store struct {
	Sessions repo.SessionRepo

	kind  string
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// Open connects to the backend named by opts.Kind and, for the SQL
// backends, applies any pending migrations before returning.
// Close must be called when the store is no longer needed.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch opts.Kind {
	case "memory":
		return &Store{Sessions: repo.NewMemorySessionRepo(), kind: opts.Kind}, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("store.Open: create pool: %w", err)
		}
		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("store.Open: ping: %w", err)
		}
		s := &Store{
			Sessions: repo.NewPGSessionRepo(pool),
			kind:     opts.Kind,
			pool:     pool,
			sqlDB:    stdlib.OpenDBFromPool(pool),
		}
		if _, err := s.Up(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil

	case "sqlite":
		db, err := repo.OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		s := &Store{Sessions: repo.NewSQLiteSessionRepo(db), kind: opts.Kind, sqlDB: db}
		if _, err := s.Up(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("store.Open: unknown store %q", opts.Kind)
	}
}

// Kind reports which backend is open.
func (s *Store) Kind() string { return s.kind }

// Close releases the underlying connections.
func (s *Store) Close() {
	if s.sqlDB != nil {
		_ = s.sqlDB.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// Up applies all pending migrations and returns the versions applied.
func (s *Store) Up(ctx context.Context) ([]int64, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Up: %w", err)
	}
	versions := make([]int64, 0, len(results))
	for _, r := range results {
		versions = append(versions, r.Source.Version)
	}
	return versions, nil
}

// Down rolls back the most recent migration and returns its version.
// It returns 0 when nothing was applied.
func (s *Store) Down(ctx context.Context) (int64, error) {
	p, err := s.provider()
	if err != nil {
		return 0, err
	}
	r, err := p.Down(ctx)
	if err != nil {
		if r == nil {
			return 0, fmt.Errorf("store.Down: %w", err)
		}
		return r.Source.Version, fmt.Errorf("store.Down: %w", err)
	}
	return r.Source.Version, nil
}

// MigrationStatus describes one migration file and whether it has run.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Status lists every known migration in version order.
func (s *Store) Status(ctx context.Context) ([]MigrationStatus, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, MigrationStatus{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			Applied: st.State == goose.StateApplied,
		})
	}
	return out, nil
}

func (s *Store) provider() (*goose.Provider, error) {
	if s.sqlDB == nil {
		return nil, fmt.Errorf("store: %s store has no migrations", s.kind)
	}
	dialect, err := migrations.Dialect(s.kind)
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(dialect, s.sqlDB, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("store: create goose provider: %w", err)
	}
	return p, nil
}
