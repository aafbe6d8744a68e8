package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/api/middleware"
	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type sessionManager interface {
	Refresh(ctx context.Context, userID uuid.UUID) (session.Context, error)
	Teardown(ctx context.Context, userID uuid.UUID, tokenID string) error
}

// SessionCurrent returns the session resolved by the auth middleware.
func SessionCurrent(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		responses.WriteSuccess(w, sess)
	}
}

// SessionRefresh drops the cached session and reloads it from the profile.
func SessionRefresh(manager sessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			unavailable(w, r, logg, "session")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}

		sess, err := manager.Refresh(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess)
	}
}

// SessionLogout clears the cache and revokes the presented token.
func SessionLogout(manager sessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			unavailable(w, r, logg, "session")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}

		if err := manager.Teardown(r.Context(), userID, middleware.TokenIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "teardown session"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
