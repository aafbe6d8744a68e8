package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/types"
)

type profileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	CreateIfMissing(ctx context.Context, profile *models.Profile) (bool, error)
	Update(ctx context.Context, profile *models.Profile, columns []string) error
}

// Service exposes profile operations.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*ProfileDTO, error)
	CreateFromSignup(ctx context.Context, input SignupInput) (*ProfileDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	Completion(ctx context.Context, id uuid.UUID) (Completion, error)
	Skills(ctx context.Context, id uuid.UUID) ([]SkillWithProficiency, error)
	ResolveSession(ctx context.Context, seed session.Context) (session.Context, error)
}

// SignupInput is the identity the auth provider reports for a new user.
type SignupInput struct {
	ID       uuid.UUID
	Email    string
	Name     string
	UserType enums.UserType
}

type service struct {
	repo profileRepository
}

// NewService builds a profile service with the provided repository.
func NewService(repo profileRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(profile), nil
}

func (s *service) CreateFromSignup(ctx context.Context, input SignupInput) (*ProfileDTO, error) {
	profile, err := s.ensure(ctx, input)
	if err != nil {
		return nil, err
	}
	return FromModel(profile), nil
}

func (s *service) ensure(ctx context.Context, input SignupInput) (*models.Profile, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	userType := input.UserType
	if !userType.IsValid() {
		userType = enums.UserTypeFounder
	}
	profile := &models.Profile{
		ID:                 input.ID,
		Email:              strings.TrimSpace(input.Email),
		Name:               signupName(input.Name, input.Email),
		UserType:           userType,
		Skills:             types.StringList{},
		Achievements:       types.StringList{},
		InvestmentFocus:    types.StringList{},
		SkillProficiencies: types.SkillProficiencies{},
	}
	if _, err := s.repo.CreateIfMissing(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}
	return s.load(ctx, input.ID)
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	if actorID != id {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only update your own profile")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	columns := applyUpdate(profile, input)

	if profile.InvestmentRangeMin != nil && profile.InvestmentRangeMax != nil &&
		profile.InvestmentRangeMin.GreaterThan(*profile.InvestmentRangeMax) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
			"investment_range_min": "must not exceed investment_range_max",
		})
	}

	if err := s.repo.Update(ctx, profile, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(profile), nil
}

func (s *service) Completion(ctx context.Context, id uuid.UUID) (Completion, error) {
	profile, err := s.load(ctx, id)
	if err != nil {
		return Completion{}, err
	}
	return ComputeCompletion(profile), nil
}

func (s *service) Skills(ctx context.Context, id uuid.UUID) ([]SkillWithProficiency, error) {
	profile, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FormatSkills(profile), nil
}

// ResolveSession loads the profile behind a session, creating it from the
// token seed when the signup event has not been processed yet.
func (s *service) ResolveSession(ctx context.Context, seed session.Context) (session.Context, error) {
	profile, err := s.repo.FindByID(ctx, seed.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile, err = s.ensure(ctx, SignupInput{
			ID:       seed.UserID,
			Email:    seed.Email,
			Name:     seed.Name,
			UserType: seed.UserType,
		})
		if err != nil {
			return session.Context{}, err
		}
	} else if err != nil {
		return session.Context{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return session.Context{
		UserID:   profile.ID,
		Email:    profile.Email,
		Name:     profile.Name,
		UserType: profile.UserType,
	}, nil
}

// applyUpdate copies the set fields onto p and returns the columns it touched.
func applyUpdate(p *models.Profile, in UpdateProfileInput) []string {
	var columns []string
	if in.Name != nil {
		columns = append(columns, "name")
		p.Name = *in.Name
	}
	if in.Bio != nil {
		columns = append(columns, "bio")
		p.Bio = *in.Bio
	}
	if in.Skills != nil {
		columns = append(columns, "skills")
		p.Skills = types.StringList(*in.Skills)
	}
	if in.Experience != nil {
		columns = append(columns, "experience")
		p.Experience = *in.Experience
	}
	if in.Contact != nil {
		columns = append(columns, "contact")
		p.Contact = *in.Contact
	}
	if in.AvatarURL != nil {
		columns = append(columns, "avatar_url")
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if in.UserType != nil {
		columns = append(columns, "user_type")
		p.UserType = *in.UserType
	}
	if in.ProfessionalSummary != nil {
		columns = append(columns, "professional_summary")
		p.ProfessionalSummary = *in.ProfessionalSummary
	}
	if in.Location != nil {
		columns = append(columns, "location")
		p.Location = *in.Location
	}
	if in.Timezone != nil {
		columns = append(columns, "timezone")
		p.Timezone = *in.Timezone
	}
	if in.AvailabilityStatus != nil {
		columns = append(columns, "availability_status")
		status := *in.AvailabilityStatus
		p.AvailabilityStatus = &status
	}
	if in.SkillProficiencies != nil {
		columns = append(columns, "skill_proficiencies")
		p.SkillProficiencies = types.SkillProficiencies(*in.SkillProficiencies)
	}
	if in.Achievements != nil {
		columns = append(columns, "achievements")
		p.Achievements = types.StringList(*in.Achievements)
	}
	if in.SocialLinks != nil {
		columns = append(columns, "social_links")
		p.SocialLinks = *in.SocialLinks
	}
	if in.InvestmentFocus != nil {
		columns = append(columns, "investment_focus")
		p.InvestmentFocus = types.StringList(*in.InvestmentFocus)
	}
	if in.InvestmentRangeMin != nil {
		columns = append(columns, "investment_range_min")
		lo := *in.InvestmentRangeMin
		p.InvestmentRangeMin = &lo
	}
	if in.InvestmentRangeMax != nil {
		columns = append(columns, "investment_range_max")
		hi := *in.InvestmentRangeMax
		p.InvestmentRangeMax = &hi
	}
	if in.PortfolioSize != nil {
		columns = append(columns, "portfolio_size")
		size := *in.PortfolioSize
		p.PortfolioSize = &size
	}
	return columns
}

func signupName(name, email string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(email), "@"); ok && local != "" {
		return local
	}
	return "Member"
}
