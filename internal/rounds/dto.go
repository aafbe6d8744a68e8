package rounds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// RoundDTO exposes a round with its derived funding progress.
type RoundDTO struct {
	ID            uuid.UUID            `json:"id"`
	ProjectID     uuid.UUID            `json:"project_id"`
	Project       *projects.ProjectDTO `json:"project,omitempty"`
	RoundName     string               `json:"round_name"`
	AmountSeeking decimal.Decimal      `json:"amount_seeking"`
	AmountRaised  decimal.Decimal      `json:"amount_raised"`
	Valuation     decimal.Decimal      `json:"valuation"`
	EquityOffered decimal.Decimal      `json:"equity_offered"`
	MinInvestment decimal.Decimal      `json:"min_investment"`
	MaxInvestment decimal.Decimal      `json:"max_investment"`
	Description   string               `json:"description"`
	Terms         string               `json:"terms"`
	Status        enums.RoundStatus    `json:"status"`
	Deadline      time.Time            `json:"deadline"`
	Progress      float64              `json:"progress"`
	ProgressBar   float64              `json:"progress_bar"`
	DaysLeft      int                  `json:"days_left"`
	DeadlineLabel string               `json:"deadline_label"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// FromModel maps a persisted round, deriving progress relative to now.
func FromModel(m *models.InvestmentRound, now time.Time) *RoundDTO {
	if m == nil {
		return nil
	}
	progress := Progress(m.AmountRaised, m.AmountSeeking)
	days := DaysLeft(m.Deadline, now)
	return &RoundDTO{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		Project:       projects.FromModel(m.Project),
		RoundName:     m.RoundName,
		AmountSeeking: m.AmountSeeking,
		AmountRaised:  m.AmountRaised,
		Valuation:     m.Valuation,
		EquityOffered: m.EquityOffered,
		MinInvestment: m.MinInvestment,
		MaxInvestment: m.MaxInvestment,
		Description:   m.Description,
		Terms:         m.Terms,
		Status:        m.Status,
		Deadline:      m.Deadline,
		Progress:      progress,
		ProgressBar:   ProgressBar(progress),
		DaysLeft:      days,
		DeadlineLabel: DeadlineLabel(days),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromModels maps a slice of rounds.
func FromModels(rows []models.InvestmentRound, now time.Time) []RoundDTO {
	out := make([]RoundDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i], now))
	}
	return out
}
