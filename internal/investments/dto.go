package investments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/internal/rounds"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// InvestmentDTO exposes an investment with its round and investor.
type InvestmentDTO struct {
	ID             uuid.UUID              `json:"id"`
	RoundID        uuid.UUID              `json:"round_id"`
	Round          *rounds.RoundDTO       `json:"round,omitempty"`
	InvestorID     uuid.UUID              `json:"investor_id"`
	Investor       *profiles.SummaryDTO   `json:"investor,omitempty"`
	AmountInvested decimal.Decimal        `json:"amount_invested"`
	Date           time.Time              `json:"date"`
	Status         enums.InvestmentStatus `json:"status"`
	Notes          string                 `json:"notes"`
}

// Portfolio summarizes an investor's confirmed investments.
type Portfolio struct {
	Investments    []InvestmentDTO `json:"investments"`
	TotalInvested  decimal.Decimal `json:"totalInvested"`
	PortfolioCount int             `json:"portfolioCount"`
}

// FromModel maps a persisted investment.
func FromModel(m *models.Investment, now time.Time) *InvestmentDTO {
	if m == nil {
		return nil
	}
	return &InvestmentDTO{
		ID:             m.ID,
		RoundID:        m.RoundID,
		Round:          rounds.FromModel(m.Round, now),
		InvestorID:     m.InvestorID,
		Investor:       profiles.SummaryFromModel(m.Investor),
		AmountInvested: m.AmountInvested,
		Date:           m.InvestedAt,
		Status:         m.Status,
		Notes:          m.Notes,
	}
}

// FromModels maps a slice of investments.
func FromModels(rows []models.Investment, now time.Time) []InvestmentDTO {
	out := make([]InvestmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i], now))
	}
	return out
}

// BuildPortfolio totals confirmed investments and counts distinct projects.
func BuildPortfolio(rows []InvestmentDTO) Portfolio {
	total := decimal.Zero
	projects := make(map[uuid.UUID]struct{})
	for _, inv := range rows {
		total = total.Add(inv.AmountInvested)
		if inv.Round != nil {
			projects[inv.Round.ProjectID] = struct{}{}
		}
	}
	if rows == nil {
		rows = []InvestmentDTO{}
	}
	return Portfolio{Investments: rows, TotalInvested: total, PortfolioCount: len(projects)}
}
