package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// InvestmentRound is a funding campaign opened by a project owner.
type InvestmentRound struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID     uuid.UUID         `gorm:"column:project_id;type:uuid;not null;index"`
	Project       *Project          `gorm:"foreignKey:ProjectID;references:ID"`
	RoundName     string            `gorm:"column:round_name;not null"`
	AmountSeeking decimal.Decimal   `gorm:"column:amount_seeking;type:numeric(14,2);not null"`
	AmountRaised  decimal.Decimal   `gorm:"column:amount_raised;type:numeric(14,2);not null;default:0"`
	Valuation     decimal.Decimal   `gorm:"column:valuation;type:numeric(16,2);not null;default:0"`
	EquityOffered decimal.Decimal   `gorm:"column:equity_offered;type:numeric(5,2);not null;default:0"`
	MinInvestment decimal.Decimal   `gorm:"column:min_investment;type:numeric(14,2);not null"`
	MaxInvestment decimal.Decimal   `gorm:"column:max_investment;type:numeric(14,2);not null"`
	Description   string            `gorm:"column:description;not null;default:''"`
	Terms         string            `gorm:"column:terms;not null;default:''"`
	Status        enums.RoundStatus `gorm:"column:status;not null;default:open"`
	Deadline      time.Time         `gorm:"column:deadline;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (InvestmentRound) TableName() string { return "investment_rounds" }

// Investment is an investor's commitment to a round.
type Investment struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	RoundID        uuid.UUID              `gorm:"column:round_id;type:uuid;not null;index"`
	Round          *InvestmentRound       `gorm:"foreignKey:RoundID;references:ID"`
	InvestorID     uuid.UUID              `gorm:"column:investor_id;type:uuid;not null;index"`
	Investor       *Profile               `gorm:"foreignKey:InvestorID;references:ID"`
	AmountInvested decimal.Decimal        `gorm:"column:amount_invested;type:numeric(14,2);not null"`
	InvestedAt     time.Time              `gorm:"column:invested_at;autoCreateTime"`
	Status         enums.InvestmentStatus `gorm:"column:status;not null;default:pending"`
	Notes          string                 `gorm:"column:notes;not null;default:''"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Investment) TableName() string { return "investments" }
