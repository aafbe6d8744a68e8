package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/internal/positions"
	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// ApplicationDTO exposes an application with whichever relations were loaded.
type ApplicationDTO struct {
	ID          uuid.UUID               `json:"id"`
	PositionID  uuid.UUID               `json:"position_id"`
	Position    *positions.PositionDTO  `json:"position,omitempty"`
	ApplicantID uuid.UUID               `json:"applicant_id"`
	Applicant   *profiles.SummaryDTO    `json:"applicant,omitempty"`
	Message     string                  `json:"message"`
	Status      enums.ApplicationStatus `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// FromModel maps an application row.
func FromModel(m *models.Application) *ApplicationDTO {
	if m == nil {
		return nil
	}
	return &ApplicationDTO{
		ID:          m.ID,
		PositionID:  m.PositionID,
		Position:    positions.FromModel(m.Position),
		ApplicantID: m.ApplicantID,
		Applicant:   profiles.SummaryFromModel(m.Applicant),
		Message:     m.Message,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromModels maps a slice of applications.
func FromModels(rows []models.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
