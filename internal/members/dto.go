package members

import (
	"time"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// MemberDTO is a team seat with the member's summary and project.
type MemberDTO struct {
	ID        uuid.UUID            `json:"id"`
	ProjectID uuid.UUID            `json:"project_id"`
	Project   *projects.ProjectDTO `json:"project,omitempty"`
	UserID    uuid.UUID            `json:"user_id"`
	User      *profiles.SummaryDTO `json:"user,omitempty"`
	Role      string               `json:"role"`
	JoinedAt  time.Time            `json:"joined_at"`
}

// FromModel maps a membership row.
func FromModel(m *models.ProjectMember) *MemberDTO {
	if m == nil {
		return nil
	}
	return &MemberDTO{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Project:   projects.FromModel(m.Project),
		UserID:    m.UserID,
		User:      profiles.SummaryFromModel(m.User),
		Role:      m.Role,
		JoinedAt:  m.JoinedAt,
	}
}

// FromModels maps a slice of memberships.
func FromModels(rows []models.ProjectMember) []MemberDTO {
	out := make([]MemberDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
