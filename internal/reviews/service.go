package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type reviewRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error)
	CreateWithTx(tx *gorm.DB, review *models.Review) error
	RatingsForRevieweeWithTx(tx *gorm.DB, userID uuid.UUID) ([]int, error)
	ListInvestorReviews(ctx context.Context, investorID uuid.UUID) ([]models.InvestorReview, error)
	CreateInvestorReviewWithTx(tx *gorm.DB, review *models.InvestorReview) error
	InvestorRatingsWithTx(tx *gorm.DB, investorID uuid.UUID) ([]int, error)
	InvestorRatings(ctx context.Context, investorID uuid.UUID) ([]int, error)
}

// ProfileStore reads review subjects and writes their denormalized ratings.
type ProfileStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateAverageRatingWithTx(tx *gorm.DB, id uuid.UUID, rating float64) error
	UpdateInvestorRatingWithTx(tx *gorm.DB, id uuid.UUID, rating float64) error
}

// Service exposes review operations.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	ListInvestorReviews(ctx context.Context, investorID uuid.UUID) ([]InvestorReviewDTO, error)
	CreateInvestorReview(ctx context.Context, actorID uuid.UUID, input CreateInvestorReviewInput) (*InvestorReviewDTO, error)
	AverageInvestorRating(ctx context.Context, investorID uuid.UUID) (float64, error)
}

// CreateReviewInput is a member's rating of a teammate.
type CreateReviewInput struct {
	RevieweeID uuid.UUID
	ProjectID  uuid.UUID
	Rating     int
	Comment    string
}

// CreateInvestorReviewInput is a founder's rating of an investor.
type CreateInvestorReviewInput struct {
	InvestorID uuid.UUID
	ProjectID  uuid.UUID
	Rating     int
	Comment    string
	Helpful    bool
	Responsive bool
}

type service struct {
	repo     reviewRepository
	profiles ProfileStore
	projects projects.Lookup
	tx       txRunner
}

// NewService builds a review service.
func NewService(repo reviewRepository, profileStore ProfileStore, projectLookup projects.Lookup, tx txRunner) (Service, error) {
	switch {
	case repo == nil:
		return nil, fmt.Errorf("review repository required")
	case profileStore == nil:
		return nil, fmt.Errorf("profile store required")
	case projectLookup == nil:
		return nil, fmt.Errorf("project lookup required")
	case tx == nil:
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, profiles: profileStore, projects: projectLookup, tx: tx}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	out := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	comment, err := validateReview(input.Rating, input.Comment)
	if err != nil {
		return nil, err
	}
	if input.RevieweeID == actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you cannot review yourself")
	}
	if _, err := s.loadProfile(ctx, input.RevieweeID); err != nil {
		return nil, err
	}
	if _, err := projects.Load(ctx, s.projects, input.ProjectID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ReviewerID: actorID,
		RevieweeID: input.RevieweeID,
		ProjectID:  input.ProjectID,
		Rating:     input.Rating,
		Comment:    comment,
	}
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, review); err != nil {
			return err
		}
		ratings, err := s.repo.RatingsForRevieweeWithTx(tx, review.RevieweeID)
		if err != nil {
			return err
		}
		return s.profiles.UpdateAverageRatingWithTx(tx, review.RevieweeID, RoundedMean(ratings))
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return FromModel(review), nil
}

func (s *service) ListInvestorReviews(ctx context.Context, investorID uuid.UUID) ([]InvestorReviewDTO, error) {
	rows, err := s.repo.ListInvestorReviews(ctx, investorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list investor reviews")
	}
	out := make([]InvestorReviewDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *InvestorReviewFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateInvestorReview(ctx context.Context, actorID uuid.UUID, input CreateInvestorReviewInput) (*InvestorReviewDTO, error) {
	comment, err := validateReview(input.Rating, input.Comment)
	if err != nil {
		return nil, err
	}
	if input.InvestorID == actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you cannot review yourself")
	}
	investor, err := s.loadProfile(ctx, input.InvestorID)
	if err != nil {
		return nil, err
	}
	if investor.UserType != enums.UserTypeInvestor {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only investors can receive investor reviews")
	}
	if _, err := projects.Load(ctx, s.projects, input.ProjectID); err != nil {
		return nil, err
	}

	review := &models.InvestorReview{
		ReviewerID: actorID,
		InvestorID: input.InvestorID,
		ProjectID:  input.ProjectID,
		Rating:     input.Rating,
		Comment:    comment,
		Helpful:    input.Helpful,
		Responsive: input.Responsive,
	}
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateInvestorReviewWithTx(tx, review); err != nil {
			return err
		}
		ratings, err := s.repo.InvestorRatingsWithTx(tx, review.InvestorID)
		if err != nil {
			return err
		}
		return s.profiles.UpdateInvestorRatingWithTx(tx, review.InvestorID, RoundedMean(ratings))
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create investor review")
	}
	return InvestorReviewFromModel(review), nil
}

func (s *service) AverageInvestorRating(ctx context.Context, investorID uuid.UUID) (float64, error) {
	ratings, err := s.repo.InvestorRatings(ctx, investorID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load investor ratings")
	}
	return RoundedMean(ratings), nil
}

func (s *service) loadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

func validateReview(rating int, comment string) (string, error) {
	details := map[string]string{}
	switch {
	case rating == 0:
		details["rating"] = "Please select a rating"
	case rating < 1 || rating > 5:
		details["rating"] = "Rating must be between 1 and 5"
	}
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		details["comment"] = "Please write a comment"
	}
	if len(details) > 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return trimmed, nil
}
