package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/api/validators"
	"github.com/cofoundr/cofoundr-backend/internal/mrr"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type mrrRecordRequest struct {
	Month                   string          `json:"month" validate:"required"`
	Revenue                 decimal.Decimal `json:"revenue"`
	StripeSubscriptionCount int             `json:"stripe_subscription_count" validate:"gte=0"`
}

func MRRListByProject(svc mrr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "mrr")
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

// MRRAddRecord upserts a monthly revenue point for the project in the path.
func MRRAddRecord(svc mrr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "mrr")
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
		var payload mrrRecordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.AddRecord(r.Context(), userID, mrr.AddRecordInput{
			ProjectID:               projectID,
			Month:                   payload.Month,
			Revenue:                 payload.Revenue,
			StripeSubscriptionCount: payload.StripeSubscriptionCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// MRRListMine returns one series per project the caller is a member of.
func MRRListMine(svc mrr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "mrr")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		series, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}

func MRRDashboard(svc mrr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "mrr")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		dashboard, err := svc.Dashboard(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
