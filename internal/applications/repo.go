package applications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// Repository handles application persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to application operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new application.
func (r *Repository) Create(ctx context.Context, application *models.Application) error {
	if application == nil {
		return fmt.Errorf("application is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(application).Error
}

// FindByID loads an application with its position, the position's project and the applicant.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).
		Joins("Applicant").
		Preload("Position.Project").
		Where("applications.id = ?", id).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// ListByApplicant returns the user's applications with position and project.
func (r *Repository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error) {
	var rows []models.Application
	if err := r.db.WithContext(ctx).
		Preload("Position.Project").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByPosition returns a position's applications with applicant profiles.
func (r *Repository) ListByPosition(ctx context.Context, positionID uuid.UUID) ([]models.Application, error) {
	var rows []models.Application
	if err := r.db.WithContext(ctx).
		Joins("Applicant").
		Where("applications.position_id = ?", positionID).
		Order("applications.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByProject returns applications across a project's positions.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Application, error) {
	db := r.db.WithContext(ctx)
	positionIDs := db.Model(&models.Position{}).Select("id").Where("project_id = ?", projectID)

	var rows []models.Application
	if err := db.
		Joins("Applicant").
		Preload("Position").
		Where("applications.position_id IN (?)", positionIDs).
		Order("applications.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatusWithTx writes the review decision inside the caller's transaction.
func (r *Repository) UpdateStatusWithTx(tx *gorm.DB, id uuid.UUID, status enums.ApplicationStatus) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	res := tx.Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
