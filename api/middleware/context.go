package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
)

type contextKey string

const (
	ctxSession   contextKey = "session"
	ctxTokenID   contextKey = "token_id"
	ctxRequestID contextKey = "request_id"
)

// WithSession injects the resolved session into the context.
func WithSession(ctx context.Context, sess session.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

// SessionFromContext returns the session attached by Auth.
func SessionFromContext(ctx context.Context) (session.Context, bool) {
	if ctx == nil {
		return session.Context{}, false
	}
	sess, ok := ctx.Value(ctxSession).(session.Context)
	return sess, ok && sess.UserID != uuid.Nil
}

// UserIDFromContext returns the authenticated user id, or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	sess, _ := SessionFromContext(ctx)
	return sess.UserID
}

// WithTokenID records the access token's jti for sign-out.
func WithTokenID(ctx context.Context, tokenID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTokenID, tokenID)
}

func TokenIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTokenID).(string); ok {
		return v
	}
	return ""
}
