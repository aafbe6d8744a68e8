package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	pkgAuth "github.com/cofoundr/cofoundr-backend/pkg/auth"
	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
	"github.com/cofoundr/cofoundr-backend/pkg/config"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

// SessionLoader resolves verified claims into a session context.
type SessionLoader interface {
	session.RevocationChecker
	Load(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (session.Context, error)
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}

// Auth validates a bearer token, rejects signed-out tokens and seeds the
// request context with the resolved session.
func Auth(cfg config.JWTConfig, sessions SessionLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			revoked, err := sessions.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}
			if revoked {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session signed out"))
				return
			}

			sess, err := sessions.Load(r.Context(), claims)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
				return
			}

			ctx := WithSession(r.Context(), sess)
			ctx = WithTokenID(ctx, claims.ID)
			if logg != nil {
				ctx = logg.WithSession(ctx, sess.UserID.String(), string(sess.UserType))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HookAuth verifies the bearer token the auth provider signs its event
// callbacks with.
func HookAuth(cfg config.AuthHookConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if _, err := pkgAuth.ParseHookToken(cfg.Secret, token); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid hook token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
