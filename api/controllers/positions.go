package controllers

import (
	"net/http"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/api/validators"
	"github.com/cofoundr/cofoundr-backend/internal/positions"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type positionCreateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type positionUpdateRequest struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Requirements *string               `json:"requirements,omitempty"`
	Status       *enums.PositionStatus `json:"status,omitempty"`
}

// PositionListOpen returns every open position with its project.
func PositionListOpen(svc positions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "position")
			return
		}
		list, err := svc.ListOpen(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func PositionListByProject(svc positions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "position")
			return
		}
		projectID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListByProject(r.Context(), projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func PositionGet(svc positions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "position")
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		position, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, position)
	}
}

// PositionCreate opens a position on the project in the path.
func PositionCreate(svc positions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "position")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		projectID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload positionCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		position, err := svc.Create(r.Context(), userID, positions.CreatePositionInput{
			ProjectID:    projectID,
			Title:        payload.Title,
			Description:  payload.Description,
			Requirements: payload.Requirements,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, position)
	}
}

func PositionUpdate(svc positions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "position")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload positionUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		position, err := svc.Update(r.Context(), userID, id, positions.UpdatePositionInput{
			Title:        payload.Title,
			Description:  payload.Description,
			Requirements: payload.Requirements,
			Status:       payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, position)
	}
}

func PositionDelete(svc positions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "position")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), userID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
