package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/api/validators"
	"github.com/cofoundr/cofoundr-backend/internal/investments"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type investmentCreateRequest struct {
	Amount decimal.Decimal `json:"amount_invested"`
	Notes  string          `json:"notes"`
}

type investmentStatusRequest struct {
	Status enums.InvestmentStatus `json:"status" validate:"required"`
}

// InvestmentCreate commits the caller to the round in the path.
func InvestmentCreate(svc investments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "investment")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		roundID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload investmentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		investment, err := svc.Create(r.Context(), userID, investments.CreateInvestmentInput{
			RoundID: roundID,
			Amount:  payload.Amount,
			Notes:   payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, investment)
	}
}

// InvestmentList filters by ?round_id= and ?investor_id=.
func InvestmentList(svc investments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "investment")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		roundID, err := validators.ParseQueryUUID(r, "round_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		investorID, err := validators.ParseQueryUUID(r, "investor_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), userID, investments.ListFilter{RoundID: roundID, InvestorID: investorID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func InvestmentUpdateStatus(svc investments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "investment")
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
		var payload investmentStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		investment, err := svc.UpdateStatus(r.Context(), userID, id, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, investment)
	}
}

// Portfolio summarizes the caller's confirmed investments.
func Portfolio(svc investments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "investment")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		portfolio, err := svc.Portfolio(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, portfolio)
	}
}
