// Package session provides repository interface and types for game sessions
package session

import (
	"context"
	"time"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/KirkDiggler/bun-dungeon/internal/repositories/session Repository

// DefaultTTL is how long an untouched session lives
const DefaultTTL = 24 * time.Hour

// Session is one playthrough: the RPG state plus what the last combat round
// printed, so a resumed game can redraw the battle screen
type Session struct {
	ID        string             `json:"id"`
	State     *rpg.State         `json:"state"`
	LastLog   []rpg.CombatAction `json:"lastLog,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	ID    string
	State *rpg.State
	// TTL defaults to DefaultTTL
	TTL time.Duration
}

// CreateOutput contains the stored session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *Session
}

// UpdateInput replaces a session's state. Every update pushes expiry out by
// TTL from now.
type UpdateInput struct {
	Session *Session
	TTL     time.Duration
}

// UpdateOutput contains the stored session
type UpdateOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a session
type DeleteOutput struct{}

// Repository defines the interface for session storage operations
type Repository interface {
	// Create stores a new session; an existing id is AlreadyExists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a live session; missing or expired is NotFound
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a live session and refreshes its expiry
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session; deleting a missing session is not an error
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errIDEmpty     = "session ID cannot be empty"
	errSessionNil  = "session cannot be nil"
	errStateNil    = "session state cannot be nil"
	errNotFoundFmt = "session %s not found"
	errExpiredFmt  = "session %s has expired"
	errExistsFmt   = "session %s already exists"
	metaSessionID  = "session_id"
)

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
