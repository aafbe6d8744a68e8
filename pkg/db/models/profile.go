package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/cofoundr/cofoundr-backend/pkg/types"
)

// Profile is the marketplace identity of an authenticated user. The id is the
// auth provider's subject, so it is never generated locally.
type Profile struct {
	ID                  uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey"`
	Email               string                    `gorm:"column:email;not null"`
	Name                string                    `gorm:"column:name;not null"`
	Bio                 string                    `gorm:"column:bio;not null;default:''"`
	Skills              types.StringList          `gorm:"column:skills;type:jsonb;not null;default:'[]'"`
	Experience          string                    `gorm:"column:experience;not null;default:''"`
	Contact             string                    `gorm:"column:contact;not null;default:''"`
	AvatarURL           string                    `gorm:"column:avatar_url;not null;default:''"`
	UserType            enums.UserType            `gorm:"column:user_type;not null;default:founder"`
	AverageRating       float64                   `gorm:"column:average_rating;not null;default:0"`
	InvestorRating      float64                   `gorm:"column:investor_rating;not null;default:0"`
	ProfessionalSummary string                    `gorm:"column:professional_summary;not null;default:''"`
	Location            string                    `gorm:"column:location;not null;default:''"`
	Timezone            string                    `gorm:"column:timezone;not null;default:''"`
	AvailabilityStatus  *enums.AvailabilityStatus `gorm:"column:availability_status"`
	SkillProficiencies  types.SkillProficiencies  `gorm:"column:skill_proficiencies;type:jsonb;not null;default:'{}'"`
	Achievements        types.StringList          `gorm:"column:achievements;type:jsonb;not null;default:'[]'"`
	SocialLinks         types.SocialLinks         `gorm:"column:social_links;type:jsonb;not null;default:'{}'"`
	InvestmentFocus     types.StringList          `gorm:"column:investment_focus;type:jsonb;not null;default:'[]'"`
	InvestmentRangeMin  *decimal.Decimal          `gorm:"column:investment_range_min;type:numeric(14,2)"`
	InvestmentRangeMax  *decimal.Decimal          `gorm:"column:investment_range_max;type:numeric(14,2)"`
	PortfolioSize       *int                      `gorm:"column:portfolio_size"`
	CreatedAt           time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string { return "profiles" }
