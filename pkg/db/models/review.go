package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one member's rating of another, scoped to a shared project.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ReviewerID uuid.UUID `gorm:"column:reviewer_id;type:uuid;not null"`
	Reviewer   *Profile  `gorm:"foreignKey:ReviewerID;references:ID"`
	RevieweeID uuid.UUID `gorm:"column:reviewee_id;type:uuid;not null;index"`
	ProjectID  uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	Project    *Project  `gorm:"foreignKey:ProjectID;references:ID"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    string    `gorm:"column:comment;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Review) TableName() string { return "reviews" }

// InvestorReview is a founder's rating of an investor they worked with.
type InvestorReview struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ReviewerID uuid.UUID `gorm:"column:reviewer_id;type:uuid;not null"`
	Reviewer   *Profile  `gorm:"foreignKey:ReviewerID;references:ID"`
	InvestorID uuid.UUID `gorm:"column:investor_id;type:uuid;not null;index"`
	Investor   *Profile  `gorm:"foreignKey:InvestorID;references:ID"`
	ProjectID  uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	Project    *Project  `gorm:"foreignKey:ProjectID;references:ID"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    string    `gorm:"column:comment;not null"`
	Helpful    bool      `gorm:"column:helpful;not null;default:false"`
	Responsive bool      `gorm:"column:responsive;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (InvestorReview) TableName() string { return "investor_reviews" }
