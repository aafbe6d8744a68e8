package positions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// Repository handles position persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to position operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByProject returns the project's positions, newest first.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Position, error) {
	var rows []models.Position
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOpen returns every open position with its project and owner.
func (r *Repository) ListOpen(ctx context.Context) ([]models.Position, error) {
	var rows []models.Position
	if err := r.db.WithContext(ctx).
		Preload("Project.Owner").
		Where("positions.status = ?", enums.PositionStatusOpen).
		Order("positions.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a position with its project and owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	var position models.Position
	if err := r.db.WithContext(ctx).
		Preload("Project.Owner").
		Where("positions.id = ?", id).
		First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// Create persists a new position.
func (r *Repository) Create(ctx context.Context, position *models.Position) error {
	if position == nil {
		return fmt.Errorf("position is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(position).Error
}

// CreateWithTx inserts positions inside the caller's transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, positions []models.Position) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(positions) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&positions).Error
}

// Update saves the provided position.
func (r *Repository) Update(ctx context.Context, position *models.Position) error {
	if position == nil {
		return fmt.Errorf("position is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(position).Error
}

// Delete removes the position and, through the FK cascade, its applications.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Position{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
