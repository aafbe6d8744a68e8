package positions

import (
	"time"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// PositionDTO exposes a position, optionally with its project.
type PositionDTO struct {
	ID           uuid.UUID            `json:"id"`
	ProjectID    uuid.UUID            `json:"project_id"`
	Project      *projects.ProjectDTO `json:"project,omitempty"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Requirements string               `json:"requirements"`
	Status       enums.PositionStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// FromModel maps the persisted position into a DTO.
func FromModel(m *models.Position) *PositionDTO {
	if m == nil {
		return nil
	}
	return &PositionDTO{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		Project:      projects.FromModel(m.Project),
		Title:        m.Title,
		Description:  m.Description,
		Requirements: m.Requirements,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromModels maps a slice of positions.
func FromModels(rows []models.Position) []PositionDTO {
	out := make([]PositionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
