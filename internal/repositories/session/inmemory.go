package session

import (
	"context"
	"sync"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/pkg/clock"
)

// InMemoryRepository implements Repository in process memory. Sessions are
// lost on exit.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Session
}

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*Session),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new session
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if existing, ok := r.store[input.ID]; ok && !now.After(existing.ExpiresAt) {
		return nil, errors.AlreadyExistsf(errExistsFmt, input.ID).WithMeta(metaSessionID, input.ID)
	}

	session := &Session{
		ID:        input.ID,
		State:     input.State.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttlOrDefault(input.TTL)),
	}
	r.store[input.ID] = session

	return &CreateOutput{Session: copySession(session)}, nil
}

// Get retrieves a session by id
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.store[input.ID]
	if !ok {
		return nil, errors.NotFoundf(errNotFoundFmt, input.ID).WithMeta(metaSessionID, input.ID)
	}
	if r.clock.Now().After(session.ExpiresAt) {
		return nil, errors.NotFoundf(errExpiredFmt, input.ID).WithMeta(metaSessionID, input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Session: copySession(session)}, nil
}

// Update replaces an existing session and pushes its expiry out
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.Session.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := input.Session.ID
	now := r.clock.Now()
	existing, ok := r.store[id]
	if !ok || now.After(existing.ExpiresAt) {
		return nil, errors.NotFoundf(errNotFoundFmt, id).WithMeta(metaSessionID, id)
	}

	session := copySession(input.Session)
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttlOrDefault(input.TTL))
	r.store[id] = session

	return &UpdateOutput{Session: copySession(session)}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

func copySession(s *Session) *Session {
	c := *s
	c.State = s.State.Clone()
	c.LastLog = append([]rpg.CombatAction(nil), s.LastLog...)
	return &c
}
