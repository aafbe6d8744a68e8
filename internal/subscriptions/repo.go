package subscriptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// Repository persists the Stripe subscription mirror.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to subscription operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByStripeIDWithTx loads the mirror row for a Stripe subscription id.
func (r *Repository) FindByStripeIDWithTx(tx *gorm.DB, stripeID string) (*models.StripeSubscription, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var row models.StripeSubscription
	if err := tx.Where("stripe_subscription_id = ?", stripeID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertWithTx inserts or refreshes the row keyed by stripe_subscription_id.
func (r *Repository) UpsertWithTx(tx *gorm.DB, row *models.StripeSubscription) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stripe_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"project_id",
			"stripe_customer_id",
			"status",
			"amount",
			"currency",
			"current_period_start",
			"current_period_end",
			"updated_at",
		}),
	}).Create(row).Error
}

// MarkCanceledWithTx flips the subscription to canceled and returns its project.
func (r *Repository) MarkCanceledWithTx(tx *gorm.DB, stripeID string) (uuid.UUID, error) {
	row, err := r.FindByStripeIDWithTx(tx, stripeID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Model(&models.StripeSubscription{}).
		Where("id = ?", row.ID).
		Update("status", enums.SubscriptionStatusCanceled).Error; err != nil {
		return uuid.Nil, err
	}
	return row.ProjectID, nil
}

// ListActiveByProjectWithTx returns the project's active subscriptions.
func (r *Repository) ListActiveByProjectWithTx(tx *gorm.DB, projectID uuid.UUID) ([]models.StripeSubscription, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var rows []models.StripeSubscription
	if err := tx.Where("project_id = ? AND status = ?", projectID, enums.SubscriptionStatusActive).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ProjectIDsWithSubscriptions lists every project that has ever had a subscription.
func (r *Repository) ProjectIDsWithSubscriptions(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.StripeSubscription{}).
		Distinct("project_id").
		Pluck("project_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
