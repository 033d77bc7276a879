package common

import (
	"context"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"
)

type contextKey string

const (
	// SessionKey carries the authenticated session data for the request.
	SessionKey contextKey = "session"
	// SessionIDKey carries the opaque id of that session.
	SessionIDKey contextKey = "session_id"
)

// WithSession returns a context carrying the session data and its id.
func WithSession(ctx context.Context, id string, data *session.Data) context.Context {
	ctx = context.WithValue(ctx, SessionKey, data)
	return context.WithValue(ctx, SessionIDKey, id)
}

// GetSessionFromContext extracts the session data from the request context.
func GetSessionFromContext(ctx context.Context) (*session.Data, bool) {
	data, ok := ctx.Value(SessionKey).(*session.Data)
	return data, ok && data != nil
}

// GetSessionIDFromContext extracts the session id from the request context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}
