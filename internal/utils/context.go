package utils

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type used for request context values set by middleware.
type ContextKey string

const (
	// UserIDKey carries the authenticated user's id.
	UserIDKey ContextKey = "user_id"
	// EmailKey carries the authenticated user's email.
	EmailKey ContextKey = "email"
)

// GetUserIDFromContext returns the authenticated user id placed in the
// request context by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// WithEmail returns a context carrying the authenticated user's email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey, email)
}
