package profiles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/cofoundr/cofoundr-backend/pkg/types"
)

// ProfileDTO exposes profile data in API responses.
type ProfileDTO struct {
	ID                  uuid.UUID                 `json:"id"`
	Email               string                    `json:"email"`
	Name                string                    `json:"name"`
	Bio                 string                    `json:"bio"`
	Skills              []string                  `json:"skills"`
	Experience          string                    `json:"experience"`
	Contact             string                    `json:"contact"`
	AvatarURL           string                    `json:"avatar_url"`
	UserType            enums.UserType            `json:"user_type"`
	Rating              float64                   `json:"rating"`
	InvestorRating      float64                   `json:"investor_rating"`
	ProfessionalSummary string                    `json:"professional_summary"`
	Location            string                    `json:"location"`
	Timezone            string                    `json:"timezone"`
	AvailabilityStatus  *enums.AvailabilityStatus `json:"availability_status,omitempty"`
	AvailabilityLabel   string                    `json:"availability_label"`
	AvailabilityColor   string                    `json:"availability_color"`
	SkillProficiencies  types.SkillProficiencies  `json:"skill_proficiencies"`
	Achievements        []string                  `json:"achievements"`
	SocialLinks         types.SocialLinks         `json:"social_links"`
	InvestmentFocus     []string                  `json:"investment_focus,omitempty"`
	InvestmentRangeMin  *decimal.Decimal          `json:"investment_range_min,omitempty"`
	InvestmentRangeMax  *decimal.Decimal          `json:"investment_range_max,omitempty"`
	PortfolioSize       *int                      `json:"portfolio_size,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// SummaryDTO is the compact profile embedded in other resources.
type SummaryDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	AvatarURL string         `json:"avatar_url"`
	UserType  enums.UserType `json:"user_type"`
	Rating    float64        `json:"rating"`
}

// FromModel maps the persisted profile into a DTO.
func FromModel(m *models.Profile) *ProfileDTO {
	if m == nil {
		return nil
	}
	var status enums.AvailabilityStatus
	if m.AvailabilityStatus != nil {
		status = *m.AvailabilityStatus
	}
	proficiencies := m.SkillProficiencies
	if proficiencies == nil {
		proficiencies = types.SkillProficiencies{}
	}
	return &ProfileDTO{
		ID:                  m.ID,
		Email:               m.Email,
		Name:                m.Name,
		Bio:                 m.Bio,
		Skills:              nonNil(m.Skills),
		Experience:          m.Experience,
		Contact:             m.Contact,
		AvatarURL:           m.AvatarURL,
		UserType:            m.UserType,
		Rating:              m.AverageRating,
		InvestorRating:      m.InvestorRating,
		ProfessionalSummary: m.ProfessionalSummary,
		Location:            m.Location,
		Timezone:            m.Timezone,
		AvailabilityStatus:  m.AvailabilityStatus,
		AvailabilityLabel:   AvailabilityLabel(status),
		AvailabilityColor:   AvailabilityColor(status),
		SkillProficiencies:  proficiencies,
		Achievements:        nonNil(m.Achievements),
		SocialLinks:         m.SocialLinks,
		InvestmentFocus:     m.InvestmentFocus,
		InvestmentRangeMin:  m.InvestmentRangeMin,
		InvestmentRangeMax:  m.InvestmentRangeMax,
		PortfolioSize:       m.PortfolioSize,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// SummaryFromModel maps an embedded profile. Nil when the relation was not loaded.
func SummaryFromModel(m *models.Profile) *SummaryDTO {
	if m == nil {
		return nil
	}
	return &SummaryDTO{
		ID:        m.ID,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		UserType:  m.UserType,
		Rating:    m.AverageRating,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
