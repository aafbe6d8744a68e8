package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/api/validators"
	"github.com/cofoundr/cofoundr-backend/internal/reviews"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type reviewCreateRequest struct {
	RevieweeID uuid.UUID `json:"reviewee_id" validate:"required"`
	ProjectID  uuid.UUID `json:"project_id" validate:"required"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
}

type investorReviewCreateRequest struct {
	InvestorID uuid.UUID `json:"investor_id" validate:"required"`
	ProjectID  uuid.UUID `json:"project_id" validate:"required"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Helpful    bool      `json:"helpful"`
	Responsive bool      `json:"responsive"`
}

// ReviewCreate records the caller's review of a collaborator.
func ReviewCreate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		var payload reviewCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := svc.Create(r.Context(), userID, reviews.CreateReviewInput{
			RevieweeID: payload.RevieweeID,
			ProjectID:  payload.ProjectID,
			Rating:     payload.Rating,
			Comment:    payload.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// InvestorReviewCreate records a founder's rating of an investor.
func InvestorReviewCreate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		var payload investorReviewCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := svc.CreateInvestorReview(r.Context(), userID, reviews.CreateInvestorReviewInput{
			InvestorID: payload.InvestorID,
			ProjectID:  payload.ProjectID,
			Rating:     payload.Rating,
			Comment:    payload.Comment,
			Helpful:    payload.Helpful,
			Responsive: payload.Responsive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
