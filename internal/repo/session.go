// Package repo contains all persistence logic for planning sessions.
// A session is stored as one JSON document; the Postgres and SQLite stores
// hold it in a sessions table, the memory store keeps deep copies in a map.
// No business logic lives here. Mutations arrive as closures from the service
// layer and are applied under the store's lock or row lock.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// MutateFunc changes a session in place. Returning an error aborts the
// mutation and leaves the stored session untouched.
type MutateFunc func(s *domain.Session) error

// SessionRepo defines the persistence operations for planning sessions.
// The service layer depends on this interface, not on a concrete store,
// which allows services to be unit-tested against the memory store or a mock.
type SessionRepo interface {
	// Create stores a new session and returns the persisted record.
	// CreatedAt and UpdatedAt are stamped when zero.
	Create(ctx context.Context, s domain.Session) (domain.Session, error)

	// GetByID retrieves a session by id.
	// Returns domain.ErrNotFound if no session with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error)

	// Update loads the session, applies fn to a copy and stores the copy only
	// when fn returns nil. Concurrent updates of one session are serialised.
	// Returns domain.ErrNotFound if no session with that ID exists.
	Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (domain.Session, error)

	// Delete removes a session. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so Update still gets its own unit of work.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
type pgSessionRepo struct {
	db db
}

// NewPGSessionRepo constructs a SessionRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

func (r *pgSessionRepo) Create(ctx context.Context, s domain.Session) (domain.Session, error) {
	const q = `
		INSERT INTO sessions (id, state, created_at, updated_at)
		VALUES (@id, @state, @created_at, @updated_at)`

	stamp(&s, true)
	state, err := encodeSession(s)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"id":         s.ID.String(),
		"state":      state,
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return s, nil
}

func (r *pgSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	const q = `SELECT state FROM sessions WHERE id = @id`

	s, err := scanSession(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id.String()}), id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.GetByID: %w", err)
	}
	return s, nil
}

// Update locks the session row with SELECT ... FOR UPDATE for the duration of fn.
func (r *pgSessionRepo) Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (domain.Session, error) {
	const (
		sel = `SELECT state FROM sessions WHERE id = @id FOR UPDATE`
		upd = `
			UPDATE sessions
			SET state      = @state,
			    updated_at = @updated_at
			WHERE id = @id`
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := scanSession(tx.QueryRow(ctx, sel, pgx.NamedArgs{"id": id.String()}), id)
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

	args := pgx.NamedArgs{"id": id.String(), "state": state, "updated_at": next.UpdatedAt}
	if _, err := tx.Exec(ctx, upd, args); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: commit: %w", err)
	}
	return next, nil
}

func (r *pgSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM sessions WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id.String()})
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", notFound(id))
	}
	return nil
}

// scanner is satisfied by pgx.Row and *sql.Row, allowing scanSession to be
// shared by the Postgres and SQLite stores.
type scanner interface {
	Scan(dest ...any) error
}

// scanSession reads a single state column and decodes it.
// Both pgx.ErrNoRows and sql.ErrNoRows map to domain.ErrNotFound.
func scanSession(s scanner, id uuid.UUID) (domain.Session, error) {
	var state string
	if err := s.Scan(&state); err != nil {
		if isNoRows(err) {
			return domain.Session{}, notFound(id)
		}
		return domain.Session{}, err
	}
	return decodeSession(state)
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// apply runs fn against a deep copy of current and stamps UpdatedAt on success.
func apply(current domain.Session, fn MutateFunc) (domain.Session, error) {
	next := current.Clone()
	if err := fn(&next); err != nil {
		return domain.Session{}, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	stamp(&next, false)
	return next, nil
}

// stamp sets UpdatedAt to now, and CreatedAt too when creating a record
// that does not carry one yet.
func stamp(s *domain.Session, creating bool) {
	now := time.Now().UTC()
	if creating {
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = s.CreatedAt
		}
		return
	}
	s.UpdatedAt = now
}

func encodeSession(s domain.Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return string(b), nil
}

func decodeSession(state string) (domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal([]byte(state), &s); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}
