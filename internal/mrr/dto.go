package mrr

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// RecordDTO is one month of project revenue.
type RecordDTO struct {
	ID                      uuid.UUID       `json:"id"`
	ProjectID               uuid.UUID       `json:"project_id"`
	Month                   string          `json:"month"`
	Revenue                 decimal.Decimal `json:"revenue"`
	StripeSubscriptionCount int             `json:"stripe_subscription_count"`
	CreatedAt               time.Time       `json:"created_at"`
}

// ProjectSeries groups a project's revenue history.
type ProjectSeries struct {
	ProjectID    uuid.UUID   `json:"projectId"`
	ProjectTitle string      `json:"projectTitle"`
	Data         []RecordDTO `json:"data"`
}

// Dashboard totals the latest and previous month across a user's projects.
type Dashboard struct {
	Projects      []ProjectSeries `json:"projects"`
	TotalCurrent  decimal.Decimal `json:"totalCurrent"`
	TotalPrevious decimal.Decimal `json:"totalPrevious"`
	Growth        float64         `json:"growth"`
}

// FromModel maps an MRR row.
func FromModel(m *models.MRRRecord) RecordDTO {
	return RecordDTO{
		ID:                      m.ID,
		ProjectID:               m.ProjectID,
		Month:                   m.Month,
		Revenue:                 m.Revenue,
		StripeSubscriptionCount: m.StripeSubscriptionCount,
		CreatedAt:               m.CreatedAt,
	}
}

// FromModels maps a month-ordered slice.
func FromModels(rows []models.MRRRecord) []RecordDTO {
	out := make([]RecordDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
