package investments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// ListFilter narrows an investment listing. Zero values are ignored.
type ListFilter struct {
	RoundID    *uuid.UUID
	InvestorID *uuid.UUID
}

// Repository handles investment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to investment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new investment.
func (r *Repository) Create(ctx context.Context, investment *models.Investment) error {
	if investment == nil {
		return fmt.Errorf("investment is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(investment).Error
}

// FindByID loads an investment with its investor, round and project.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Investment, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *Repository) findByID(q *gorm.DB, id uuid.UUID) (*models.Investment, error) {
	var investment models.Investment
	if err := q.
		Joins("Investor").
		Preload("Round.Project").
		Where("investments.id = ?", id).
		First(&investment).Error; err != nil {
		return nil, err
	}
	return &investment, nil
}

// List returns investments matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Investment, error) {
	q := r.db.WithContext(ctx).
		Joins("Investor").
		Preload("Round.Project")
	if filter.RoundID != nil {
		q = q.Where("investments.round_id = ?", *filter.RoundID)
	}
	if filter.InvestorID != nil {
		q = q.Where("investments.investor_id = ?", *filter.InvestorID)
	}
	var rows []models.Investment
	if err := q.Order("investments.invested_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListConfirmedByInvestor returns an investor's confirmed investments.
func (r *Repository) ListConfirmedByInvestor(ctx context.Context, investorID uuid.UUID) ([]models.Investment, error) {
	var rows []models.Investment
	if err := r.db.WithContext(ctx).
		Joins("Investor").
		Preload("Round.Project").
		Where("investments.investor_id = ? AND investments.status = ?", investorID, enums.InvestmentStatusConfirmed).
		Order("investments.invested_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatusWithTx moves an investment from one status to another. It
// reports gorm.ErrRecordNotFound when the row is no longer in the from status.
func (r *Repository) UpdateStatusWithTx(tx *gorm.DB, id uuid.UUID, from, to enums.InvestmentStatus) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	res := tx.Model(&models.Investment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
