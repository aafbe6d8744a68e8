package controllers

import (
	"net/http"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/api/validators"
	"github.com/cofoundr/cofoundr-backend/internal/applications"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type applicationCreateRequest struct {
	Message string `json:"message"`
}

type applicationStatusRequest struct {
	Status enums.ApplicationStatus `json:"status" validate:"required"`
}

// ApplicationCreate submits the caller's cover letter for the position in the path.
func ApplicationCreate(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "application")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		positionID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload applicationCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		application, err := svc.Create(r.Context(), userID, applications.CreateApplicationInput{
			PositionID: positionID,
			Message:    payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, application)
	}
}

func ApplicationListMine(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "application")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		list, err := svc.ListByApplicant(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ApplicationListByPosition(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "application")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		positionID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListByPosition(r.Context(), userID, positionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ApplicationListByProject(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "application")
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
		list, err := svc.ListByProject(r.Context(), userID, projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ApplicationUpdateStatus accepts or rejects an application.
func ApplicationUpdateStatus(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "application")
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
		var payload applicationStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		application, err := svc.UpdateStatus(r.Context(), userID, id, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, application)
	}
}
