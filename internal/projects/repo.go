package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/pagination"
)

// Repository handles project persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to project operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows project listings.
type ListFilter struct {
	Category string
	OwnerID  *uuid.UUID
}

// List returns projects newest first with their owners, fetching one extra
// row so callers can tell whether another page exists.
func (r *Repository) List(ctx context.Context, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.Project, error) {
	q := r.db.WithContext(ctx).Joins("Owner")
	if category := strings.TrimSpace(filter.Category); category != "" {
		q = q.Where("projects.category = ?", category)
	}
	if filter.OwnerID != nil {
		q = q.Where("projects.owner_id = ?", *filter.OwnerID)
	}
	if cursor != nil {
		q = q.Where("(projects.created_at < ?) OR (projects.created_at = ? AND projects.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Project
	if err := q.Order("projects.created_at DESC").Order("projects.id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a project with its owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Joins("Owner").
		Where("projects.id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDs loads the projects in ids without owners.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	var rows []models.Project
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByOwner returns every project owned by the user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	var rows []models.Project
	if err := r.db.WithContext(ctx).
		Joins("Owner").
		Where("projects.owner_id = ?", ownerID).
		Order("projects.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create persists a new project row.
func (r *Repository) Create(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// CreateWithTx persists a new project inside the caller's transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, project *models.Project) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if project == nil {
		return fmt.Errorf("project is required")
	}
	return tx.Omit(clause.Associations).Create(project).Error
}

// Update saves the provided project.
func (r *Repository) Update(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Delete removes the project. Children go with it through ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
