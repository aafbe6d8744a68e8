package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// Repository persists member and investor reviews.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to review operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForUser returns reviews written about the user with reviewer and project.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	if err := r.db.WithContext(ctx).
		Joins("Reviewer").
		Joins("Project").
		Where("reviews.reviewee_id = ?", userID).
		Order("reviews.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWithTx inserts a review inside the caller's transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, review *models.Review) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Omit(clause.Associations).Create(review).Error
}

// RatingsForRevieweeWithTx returns every rating written about the user.
func (r *Repository) RatingsForRevieweeWithTx(tx *gorm.DB, userID uuid.UUID) ([]int, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var ratings []int
	if err := tx.Model(&models.Review{}).Where("reviewee_id = ?", userID).Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListInvestorReviews returns reviews about an investor with reviewer, investor and project.
func (r *Repository) ListInvestorReviews(ctx context.Context, investorID uuid.UUID) ([]models.InvestorReview, error) {
	var rows []models.InvestorReview
	if err := r.db.WithContext(ctx).
		Joins("Reviewer").
		Joins("Investor").
		Joins("Project").
		Where("investor_reviews.investor_id = ?", investorID).
		Order("investor_reviews.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateInvestorReviewWithTx inserts an investor review inside the caller's transaction.
func (r *Repository) CreateInvestorReviewWithTx(tx *gorm.DB, review *models.InvestorReview) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Omit(clause.Associations).Create(review).Error
}

// InvestorRatingsWithTx returns every rating written about the investor.
func (r *Repository) InvestorRatingsWithTx(tx *gorm.DB, investorID uuid.UUID) ([]int, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var ratings []int
	if err := tx.Model(&models.InvestorReview{}).Where("investor_id = ?", investorID).Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// InvestorRatings returns every rating about the investor outside a transaction.
func (r *Repository) InvestorRatings(ctx context.Context, investorID uuid.UUID) ([]int, error) {
	return r.InvestorRatingsWithTx(r.db.WithContext(ctx), investorID)
}
