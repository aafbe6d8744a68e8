package mrr

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// Repository persists monthly revenue rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to MRR operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByProject returns the project's series ordered by month.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.MRRRecord, error) {
	var rows []models.MRRRecord
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("month ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByProjects returns the series for every project in ids ordered by month.
func (r *Repository) ListByProjects(ctx context.Context, ids []uuid.UUID) ([]models.MRRRecord, error) {
	if len(ids) == 0 {
		return []models.MRRRecord{}, nil
	}
	var rows []models.MRRRecord
	if err := r.db.WithContext(ctx).
		Where("project_id IN ?", ids).
		Order("month ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes the row keyed by (project_id, month).
func (r *Repository) Upsert(ctx context.Context, record *models.MRRRecord) error {
	return r.UpsertWithTx(r.db.WithContext(ctx), record)
}

// UpsertWithTx writes the row keyed by (project_id, month) inside the caller's transaction.
func (r *Repository) UpsertWithTx(tx *gorm.DB, record *models.MRRRecord) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"revenue", "stripe_subscription_count", "updated_at"}),
	}).Create(record).Error; err != nil {
		return err
	}
	// the conflict path keeps the stored id and created_at; read into a fresh
	// row so the id BeforeCreate assigned does not filter the lookup
	var stored models.MRRRecord
	if err := tx.Where("project_id = ? AND month = ?", record.ProjectID, record.Month).First(&stored).Error; err != nil {
		return err
	}
	*record = stored
	return nil
}
