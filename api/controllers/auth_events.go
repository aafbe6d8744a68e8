package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/internal/authevents"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type authEventHandler interface {
	Handle(ctx context.Context, event authevents.Event) (string, error)
}

// AuthEvents applies identity lifecycle callbacks. The provider may add
// fields to the payload, so unknown keys are tolerated here.
func AuthEvents(svc authEventHandler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "auth events")
			return
		}

		var event authevents.Event
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid json payload"))
			return
		}

		outcome, err := svc.Handle(r.Context(), event)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"outcome": outcome})
	}
}
