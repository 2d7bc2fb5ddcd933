// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/bun-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/bun-dungeon/internal/repositories/session"
	sessionmock "github.com/KirkDiggler/bun-dungeon/internal/repositories/session/mock"
)

// Clock is the time the repository helpers stamp sessions with
var Clock = clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

// ExpectSessionGet sets up a mock expectation for loading a session
func ExpectSessionGet(
	ctx context.Context, mockRepo *sessionmock.MockRepository,
	sessionID string, sess *session.Session, err error,
) *gomock.Call {
	var out *session.GetOutput
	if err == nil {
		out = &session.GetOutput{Session: sess}
	}
	return mockRepo.EXPECT().
		Get(ctx, session.GetInput{ID: sessionID}).
		Return(out, err)
}

// ExpectSessionCreate sets up a mock expectation for creating a session
func ExpectSessionCreate(ctx context.Context, mockRepo *sessionmock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input session.CreateInput) (*session.CreateOutput, error) {
			// Simulate repository behavior - it would set timestamps
			now := Clock.Now()
			return &session.CreateOutput{Session: &session.Session{
				ID:        input.ID,
				State:     input.State,
				CreatedAt: now,
				UpdatedAt: now,
				ExpiresAt: now.Add(input.TTL),
			}}, nil
		})
}

// ExpectSessionUpdate sets up a mock expectation for saving a session
func ExpectSessionUpdate(ctx context.Context, mockRepo *sessionmock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input session.UpdateInput) (*session.UpdateOutput, error) {
			// Simulate repository behavior - it would slide the expiry
			saved := *input.Session
			saved.UpdatedAt = Clock.Now()
			saved.ExpiresAt = saved.UpdatedAt.Add(input.TTL)
			return &session.UpdateOutput{Session: &saved}, nil
		})
}

// ExpectSessionDelete sets up a mock expectation for deleting a session
func ExpectSessionDelete(ctx context.Context, mockRepo *sessionmock.MockRepository, sessionID string, err error) {
	mockRepo.EXPECT().
		Delete(ctx, session.DeleteInput{ID: sessionID}).
		Return(&session.DeleteOutput{}, err)
}
