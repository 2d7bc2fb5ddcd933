package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/bun-dungeon/internal/redis"
)

// KeyPrefix starts every session key: session:{id}
const KeyPrefix = "session:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}

	now := r.clock.Now()
	ttl := ttlOrDefault(input.TTL)
	session := &Session{
		ID:        input.ID,
		State:     input.State,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, r.buildKey(input.ID), sessionJSON, ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store session in Redis").WithMeta(metaSessionID, input.ID)
	}
	if !created {
		return nil, errors.AlreadyExistsf(errExistsFmt, input.ID).WithMeta(metaSessionID, input.ID)
	}

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a session by id
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := r.buildKey(input.ID)
	sessionJSON, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf(errNotFoundFmt, input.ID).WithMeta(metaSessionID, input.ID)
		}
		return nil, errors.Wrap(err, "failed to get session from Redis").WithMeta(metaSessionID, input.ID)
	}

	var session Session
	if err := json.Unmarshal(sessionJSON, &session); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal session").
			WithMeta(metaSessionID, input.ID)
	}

	// Redis TTLs are the primary expiry; this covers clock skew between the
	// writer and the server.
	if r.clock.Now().After(session.ExpiresAt) {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			slog.Warn("Failed to delete expired session", "session_id", input.ID, "error", err)
		}
		return nil, errors.NotFoundf(errExpiredFmt, input.ID).WithMeta(metaSessionID, input.ID)
	}

	return &GetOutput{Session: &session}, nil
}

// Update replaces an existing session and pushes its expiry out
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.Session.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}

	now := r.clock.Now()
	ttl := ttlOrDefault(input.TTL)
	session := *input.Session
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)

	sessionJSON, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	updated, err := r.client.SetXX(ctx, r.buildKey(session.ID), sessionJSON, ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update session in Redis").WithMeta(metaSessionID, session.ID)
	}
	if !updated {
		return nil, errors.NotFoundf(errNotFoundFmt, session.ID).WithMeta(metaSessionID, session.ID)
	}

	return &UpdateOutput{Session: &session}, nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	if err := r.client.Del(ctx, r.buildKey(input.ID)).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to delete session from Redis").WithMeta(metaSessionID, input.ID)
	}

	return &DeleteOutput{}, nil
}

// buildKey creates the Redis key for a session
func (r *redisRepository) buildKey(id string) string {
	return KeyPrefix + id
}
