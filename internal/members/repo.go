package members

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// Repository handles project membership persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to membership operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByProject returns the project's team with user profiles, oldest member first.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	var rows []models.ProjectMember
	if err := r.db.WithContext(ctx).
		Joins("User").
		Joins("Project").
		Where("project_members.project_id = ?", projectID).
		Order("project_members.joined_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUser returns every membership the user holds with its project.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProjectMember, error) {
	var rows []models.ProjectMember
	if err := r.db.WithContext(ctx).
		Joins("Project").
		Where("project_members.user_id = ?", userID).
		Order("project_members.joined_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads one membership.
func (r *Repository) Find(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a membership, surfacing unique violations to the caller.
func (r *Repository) Create(ctx context.Context, member *models.ProjectMember) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

// EnsureWithTx inserts the membership unless (project_id, user_id) already
// exists. It reports whether a row was written.
func (r *Repository) EnsureWithTx(tx *gorm.DB, member *models.ProjectMember) (bool, error) {
	if tx == nil {
		return false, gorm.ErrInvalidTransaction
	}
	res := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(member)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes one membership.
func (r *Repository) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ProjectIDsForUser returns the ids of every project the user belongs to.
func (r *Repository) ProjectIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
