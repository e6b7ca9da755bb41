package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// memorySessionRepo keeps sessions in process memory.
// Every read and write goes through Clone so callers never share slices
// with the stored copy.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
}

// NewMemorySessionRepo constructs an empty in-memory SessionRepo.
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{sessions: make(map[uuid.UUID]domain.Session)}
}

func (r *memorySessionRepo) Create(_ context.Context, s domain.Session) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; ok {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: session %s already exists", s.ID)
	}
	stamp(&s, true)
	r.sessions[s.ID] = s.Clone()
	return s.Clone(), nil
}

func (r *memorySessionRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.GetByID: %w", notFound(id))
	}
	return s.Clone(), nil
}

func (r *memorySessionRepo) Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", notFound(id))
	}
	next, err := apply(current, fn)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Update: %w", err)
	}
	r.sessions[id] = next
	return next.Clone(), nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", notFound(id))
	}
	delete(r.sessions, id)
	return nil
}
