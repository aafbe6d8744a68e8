package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// MRRRecord is one month of recurring revenue for a project.
type MRRRecord struct {
	ID                      uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID               uuid.UUID       `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_mrr_data_project_month"`
	Month                   string          `gorm:"column:month;not null;uniqueIndex:idx_mrr_data_project_month"`
	Revenue                 decimal.Decimal `gorm:"column:revenue;type:numeric(14,2);not null;default:0"`
	StripeSubscriptionCount int             `gorm:"column:stripe_subscription_count;not null;default:0"`
	CreatedAt               time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (MRRRecord) TableName() string { return "mrr_data" }

// StripeSubscription mirrors a Stripe subscription billed on behalf of a project.
type StripeSubscription struct {
	ID                   uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID            uuid.UUID                `gorm:"column:project_id;type:uuid;not null;index"`
	StripeSubscriptionID string                   `gorm:"column:stripe_subscription_id;not null;uniqueIndex"`
	StripeCustomerID     string                   `gorm:"column:stripe_customer_id;not null;default:''"`
	Status               enums.SubscriptionStatus `gorm:"column:status;not null"`
	AmountCents          int64                    `gorm:"column:amount;not null;default:0"`
	Currency             string                   `gorm:"column:currency;not null;default:'usd'"`
	CurrentPeriodStart   *time.Time               `gorm:"column:current_period_start"`
	CurrentPeriodEnd     *time.Time               `gorm:"column:current_period_end"`
	CreatedAt            time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

func (StripeSubscription) TableName() string { return "stripe_subscriptions" }
