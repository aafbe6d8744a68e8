package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// ReviewDTO is a member review with its author and project.
type ReviewDTO struct {
	ID         uuid.UUID            `json:"id"`
	ReviewerID uuid.UUID            `json:"reviewer_id"`
	Reviewer   *profiles.SummaryDTO `json:"reviewer,omitempty"`
	RevieweeID uuid.UUID            `json:"reviewee_id"`
	ProjectID  uuid.UUID            `json:"project_id"`
	Project    *projects.ProjectDTO `json:"project,omitempty"`
	Rating     int                  `json:"rating"`
	Comment    string               `json:"comment"`
	CreatedAt  time.Time            `json:"created_at"`
}

// InvestorReviewDTO is a founder's review of an investor.
type InvestorReviewDTO struct {
	ID         uuid.UUID            `json:"id"`
	ReviewerID uuid.UUID            `json:"reviewer_id"`
	Reviewer   *profiles.SummaryDTO `json:"reviewer,omitempty"`
	InvestorID uuid.UUID            `json:"investor_id"`
	Investor   *profiles.SummaryDTO `json:"investor,omitempty"`
	ProjectID  uuid.UUID            `json:"project_id"`
	Project    *projects.ProjectDTO `json:"project,omitempty"`
	Rating     int                  `json:"rating"`
	Comment    string               `json:"comment"`
	Helpful    bool                 `json:"helpful"`
	Responsive bool                 `json:"responsive"`
	CreatedAt  time.Time            `json:"created_at"`
}

// FromModel maps a review row.
func FromModel(m *models.Review) *ReviewDTO {
	if m == nil {
		return nil
	}
	return &ReviewDTO{
		ID:         m.ID,
		ReviewerID: m.ReviewerID,
		Reviewer:   profiles.SummaryFromModel(m.Reviewer),
		RevieweeID: m.RevieweeID,
		ProjectID:  m.ProjectID,
		Project:    projects.FromModel(m.Project),
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
	}
}

// InvestorReviewFromModel maps an investor review row.
func InvestorReviewFromModel(m *models.InvestorReview) *InvestorReviewDTO {
	if m == nil {
		return nil
	}
	return &InvestorReviewDTO{
		ID:         m.ID,
		ReviewerID: m.ReviewerID,
		Reviewer:   profiles.SummaryFromModel(m.Reviewer),
		InvestorID: m.InvestorID,
		Investor:   profiles.SummaryFromModel(m.Investor),
		ProjectID:  m.ProjectID,
		Project:    projects.FromModel(m.Project),
		Rating:     m.Rating,
		Comment:    m.Comment,
		Helpful:    m.Helpful,
		Responsive: m.Responsive,
		CreatedAt:  m.CreatedAt,
	}
}
