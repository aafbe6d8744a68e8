package projects

import (
	"time"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// ProjectDTO exposes project data in API responses.
type ProjectDTO struct {
	ID          uuid.UUID            `json:"id"`
	OwnerID     uuid.UUID            `json:"owner_id"`
	Owner       *profiles.SummaryDTO `json:"owner,omitempty"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Website     string               `json:"website,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// FromModel maps the persisted project into a DTO.
func FromModel(m *models.Project) *ProjectDTO {
	if m == nil {
		return nil
	}
	return &ProjectDTO{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Owner:       profiles.SummaryFromModel(m.Owner),
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Website:     m.Website,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromModels maps a slice of projects.
func FromModels(rows []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
