package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/api/middleware"
	"github.com/cofoundr/cofoundr-backend/api/responses"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

// actorID returns the authenticated user or writes a 401.
func actorID(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	id := middleware.UserIDFromContext(r.Context())
	if id == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
		return uuid.Nil, false
	}
	return id, true
}

func unavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable"))
}
