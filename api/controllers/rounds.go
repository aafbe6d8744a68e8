package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/api/validators"
	"github.com/cofoundr/cofoundr-backend/internal/rounds"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type roundCreateRequest struct {
	RoundName     string          `json:"round_name"`
	AmountSeeking decimal.Decimal `json:"amount_seeking"`
	Valuation     decimal.Decimal `json:"valuation"`
	EquityOffered decimal.Decimal `json:"equity_offered"`
	MinInvestment decimal.Decimal `json:"min_investment"`
	MaxInvestment decimal.Decimal `json:"max_investment"`
	Description   string          `json:"description"`
	Terms         string          `json:"terms"`
	Deadline      time.Time       `json:"deadline"`
}

type roundUpdateRequest struct {
	RoundName     *string            `json:"round_name,omitempty"`
	AmountSeeking *decimal.Decimal   `json:"amount_seeking,omitempty"`
	Valuation     *decimal.Decimal   `json:"valuation,omitempty"`
	EquityOffered *decimal.Decimal   `json:"equity_offered,omitempty"`
	MinInvestment *decimal.Decimal   `json:"min_investment,omitempty"`
	MaxInvestment *decimal.Decimal   `json:"max_investment,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Terms         *string            `json:"terms,omitempty"`
	Status        *enums.RoundStatus `json:"status,omitempty"`
	Deadline      *time.Time         `json:"deadline,omitempty"`
}

// RoundList returns every round, optionally narrowed to ?project_id=.
func RoundList(svc rounds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "round")
			return
		}
		projectID, err := validators.ParseQueryUUID(r, "project_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// RoundListOpen backs investor discovery with category and ticket size filters.
func RoundListOpen(svc rounds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "round")
			return
		}
		minAmount, err := validators.ParseQueryDecimal(r, "min_amount")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxAmount, err := validators.ParseQueryDecimal(r, "max_amount")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListOpen(r.Context(), rounds.OpenFilter{
			Category:  validators.SanitizeString(r.URL.Query().Get("category"), maxCategoryLength),
			MinAmount: minAmount,
			MaxAmount: maxAmount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func RoundGet(svc rounds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "round")
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		round, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, round)
	}
}

func RoundCreate(svc rounds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "round")
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
		var payload roundCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		round, err := svc.Create(r.Context(), userID, rounds.CreateRoundInput{
			ProjectID:     projectID,
			RoundName:     payload.RoundName,
			AmountSeeking: payload.AmountSeeking,
			Valuation:     payload.Valuation,
			EquityOffered: payload.EquityOffered,
			MinInvestment: payload.MinInvestment,
			MaxInvestment: payload.MaxInvestment,
			Description:   payload.Description,
			Terms:         payload.Terms,
			Deadline:      payload.Deadline,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, round)
	}
}

func RoundUpdate(svc rounds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "round")
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
		var payload roundUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		round, err := svc.Update(r.Context(), userID, id, rounds.UpdateRoundInput{
			RoundName:     payload.RoundName,
			AmountSeeking: payload.AmountSeeking,
			Valuation:     payload.Valuation,
			EquityOffered: payload.EquityOffered,
			MinInvestment: payload.MinInvestment,
			MaxInvestment: payload.MaxInvestment,
			Description:   payload.Description,
			Terms:         payload.Terms,
			Status:        payload.Status,
			Deadline:      payload.Deadline,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, round)
	}
}
