package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	"github.com/cofoundr/cofoundr-backend/api/validators"
	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/internal/reviews"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
	"github.com/cofoundr/cofoundr-backend/pkg/types"
)

type profileUpdateRequest struct {
	Name                *string                            `json:"name,omitempty"`
	Bio                 *string                            `json:"bio,omitempty"`
	Skills              *[]string                          `json:"skills,omitempty"`
	Experience          *string                            `json:"experience,omitempty"`
	Contact             *string                            `json:"contact,omitempty"`
	AvatarURL           *string                            `json:"avatar_url,omitempty"`
	UserType            *enums.UserType                    `json:"user_type,omitempty"`
	ProfessionalSummary *string                            `json:"professional_summary,omitempty"`
	Location            *string                            `json:"location,omitempty"`
	Timezone            *string                            `json:"timezone,omitempty"`
	AvailabilityStatus  *enums.AvailabilityStatus          `json:"availability_status,omitempty"`
	SkillProficiencies  *map[string]enums.SkillProficiency `json:"skill_proficiencies,omitempty"`
	Achievements        *[]string                          `json:"achievements,omitempty"`
	SocialLinks         *types.SocialLinks                 `json:"social_links,omitempty"`
	InvestmentFocus     *[]string                          `json:"investment_focus,omitempty"`
	InvestmentRangeMin  *decimal.Decimal                   `json:"investment_range_min,omitempty"`
	InvestmentRangeMax  *decimal.Decimal                   `json:"investment_range_max,omitempty"`
	PortfolioSize       *int                               `json:"portfolio_size,omitempty"`
}

func (p profileUpdateRequest) toInput() profiles.UpdateProfileInput {
	return profiles.UpdateProfileInput{
		Name:                p.Name,
		Bio:                 p.Bio,
		Skills:              p.Skills,
		Experience:          p.Experience,
		Contact:             p.Contact,
		AvatarURL:           p.AvatarURL,
		UserType:            p.UserType,
		ProfessionalSummary: p.ProfessionalSummary,
		Location:            p.Location,
		Timezone:            p.Timezone,
		AvailabilityStatus:  p.AvailabilityStatus,
		SkillProficiencies:  p.SkillProficiencies,
		Achievements:        p.Achievements,
		SocialLinks:         p.SocialLinks,
		InvestmentFocus:     p.InvestmentFocus,
		InvestmentRangeMin:  p.InvestmentRangeMin,
		InvestmentRangeMax:  p.InvestmentRangeMax,
		PortfolioSize:       p.PortfolioSize,
	}
}

// ProfileGet returns the public profile for the id path parameter.
func ProfileGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "profile")
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// ProfileMe returns the caller's own profile.
func ProfileMe(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "profile")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// ProfileUpdateMe applies a partial update to the caller's profile.
func ProfileUpdateMe(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "profile")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Update(r.Context(), userID, userID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func ProfileCompletion(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "profile")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		completion, err := svc.Completion(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, completion)
	}
}

func ProfileSkills(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "profile")
			return
		}
		userID, ok := actorID(w, r, logg)
		if !ok {
			return
		}
		skills, err := svc.Skills(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, skills)
	}
}

// ProfileReviews lists the reviews written about a profile.
func ProfileReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListForUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ProfileInvestorReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListInvestorReviews(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProfileInvestorRating returns the rounded mean of founder ratings, 0 when unrated.
func ProfileInvestorRating(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rating, err := svc.AverageInvestorRating(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]float64{"rating": rating})
	}
}
