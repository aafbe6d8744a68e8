package profiles

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/types"
)

// UpdateProfileInput captures the allowed profile fields for mutation. Nil
// fields are left untouched.
type UpdateProfileInput struct {
	Name                *string
	Bio                 *string
	Skills              *[]string
	Experience          *string
	Contact             *string
	AvatarURL           *string
	UserType            *enums.UserType
	ProfessionalSummary *string
	Location            *string
	Timezone            *string
	AvailabilityStatus  *enums.AvailabilityStatus
	SkillProficiencies  *map[string]enums.SkillProficiency
	Achievements        *[]string
	SocialLinks         *types.SocialLinks
	InvestmentFocus     *[]string
	InvestmentRangeMin  *decimal.Decimal
	InvestmentRangeMax  *decimal.Decimal
	PortfolioSize       *int
}

// Validate checks every provided field, normalizes social links in place and
// returns a validation error keyed by JSON field name.
func (in *UpdateProfileInput) Validate() error {
	details := map[string]string{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
		checkLength(details, "name", name, 2, 100, "Name must be at least 2 characters", "Name must be less than 100 characters")
	}
	if in.Bio != nil {
		checkLength(details, "bio", *in.Bio, 10, 500, "Bio must be at least 10 characters", "Bio must be less than 500 characters")
	}
	if in.ProfessionalSummary != nil && *in.ProfessionalSummary != "" {
		checkLength(details, "professional_summary", *in.ProfessionalSummary, 20, 1000,
			"Professional summary must be at least 20 characters", "Professional summary must be less than 1000 characters")
	}
	if in.Experience != nil && *in.Experience != "" {
		checkLength(details, "experience", *in.Experience, 20, 2000,
			"Experience must be at least 20 characters", "Experience must be less than 2000 characters")
	}
	if in.Location != nil {
		checkLength(details, "location", *in.Location, 0, 100, "", "Location must be less than 100 characters")
	}
	if in.Timezone != nil {
		checkLength(details, "timezone", *in.Timezone, 0, 50, "", "Timezone must be less than 50 characters")
	}
	if in.UserType != nil && !in.UserType.IsValid() {
		details["user_type"] = "must be founder or investor"
	}
	if in.AvailabilityStatus != nil && !in.AvailabilityStatus.IsValid() {
		details["availability_status"] = "is invalid"
	}
	if in.Skills != nil {
		skills := cleanList(*in.Skills)
		in.Skills = &skills
		switch {
		case len(skills) < 1:
			details["skills"] = "Add at least one skill"
		case len(skills) > 20:
			details["skills"] = "Maximum 20 skills allowed"
		}
	}
	if in.SkillProficiencies != nil {
		for skill, level := range *in.SkillProficiencies {
			if !level.IsValid() {
				details["skill_proficiencies"] = "invalid proficiency for " + skill
				break
			}
		}
	}
	if in.Achievements != nil {
		achievements := cleanList(*in.Achievements)
		in.Achievements = &achievements
		if len(achievements) > 10 {
			details["achievements"] = "Maximum 10 achievements allowed"
		}
	}
	if in.InvestmentFocus != nil {
		focus := cleanList(*in.InvestmentFocus)
		in.InvestmentFocus = &focus
	}
	if in.SocialLinks != nil {
		links, bad := normalizeSocialLinks(*in.SocialLinks)
		in.SocialLinks = &links
		for _, field := range bad {
			details["social_links."+field] = "Please enter a valid URL"
		}
	}
	if in.InvestmentRangeMin != nil && in.InvestmentRangeMin.IsNegative() {
		details["investment_range_min"] = "must not be negative"
	}
	if in.InvestmentRangeMax != nil && in.InvestmentRangeMax.IsNegative() {
		details["investment_range_max"] = "must not be negative"
	}
	if in.PortfolioSize != nil && *in.PortfolioSize < 0 {
		details["portfolio_size"] = "must not be negative"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func checkLength(details map[string]string, field, value string, min, max int, minMsg, maxMsg string) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		details[field] = minMsg
	case n > max:
		details[field] = maxMsg
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// normalizeSocialLinks assumes https:// when a link has no scheme and returns
// the JSON names of links that still fail to parse.
func normalizeSocialLinks(in types.SocialLinks) (types.SocialLinks, []string) {
	var bad []string
	fix := func(field, raw string) string {
		value := strings.TrimSpace(raw)
		if value == "" {
			return ""
		}
		if !strings.HasPrefix(value, "http") {
			value = "https://" + value
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Host == "" {
			bad = append(bad, field)
		}
		return value
	}
	out := types.SocialLinks{
		LinkedIn:  fix("linkedin", in.LinkedIn),
		GitHub:    fix("github", in.GitHub),
		Twitter:   fix("twitter", in.Twitter),
		Portfolio: fix("portfolio", in.Portfolio),
		Website:   fix("website", in.Website),
	}
	return out, bad
}
