package repo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// OpenSQLite opens or creates the SQLite database file at path.
// The pool is limited to one connection so read-modify-write transactions
// never race for the database lock.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	return db, nil
}

// sqliteSessionRepo is the SQLite implementation of SessionRepo.
type sqliteSessionRepo struct {
	db *sql.DB
}

// NewSQLiteSessionRepo constructs a SessionRepo backed by a database opened
// with OpenSQLite. The sessions table must already exist (see migrations).
func NewSQLiteSessionRepo(db *sql.DB) SessionRepo {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Create(ctx context.Context, s domain.Session) (domain.Session, error) {
	const q = `INSERT INTO sessions (id, state, created_at, updated_at) VALUES (?, ?, ?, ?)`

	stamp(&s, true)
	state, err := encodeSession(s)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, q, s.ID.String(), state, s.CreatedAt, s.UpdatedAt); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return s, nil
}

func (r *sqliteSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	const q = `SELECT state FROM sessions WHERE id = ?`

	s, err := scanSession(r.db.QueryRowContext(ctx, q, id.String()), id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.GetByID: %w", err)
	}
	return s, nil
}

func (r *sqliteSessionRepo) Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (domain.Session, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := scanSession(tx.QueryRowContext(ctx, `SELECT state FROM sessions WHERE id = ?`, id.String()), id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", err)
	}

	next, err := apply(current, fn)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", err)
	}
	state, err := encodeSession(next)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", err)
	}

	const upd = `UPDATE sessions SET state = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, state, next.UpdatedAt, id.String()); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: commit: %w", err)
	}
	return next, nil
}

func (r *sqliteSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", notFound(id))
	}
	return nil
}
