package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// Project is a startup listing owned by exactly one founder.
type Project struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	Owner       *Profile  `gorm:"foreignKey:OwnerID;references:ID"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Category    string    `gorm:"column:category;not null;index"`
	Website     string    `gorm:"column:website;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string { return "projects" }

// Position is an open seat on a project's team.
type Position struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID    uuid.UUID            `gorm:"column:project_id;type:uuid;not null;index"`
	Project      *Project             `gorm:"foreignKey:ProjectID;references:ID"`
	Title        string               `gorm:"column:title;not null"`
	Description  string               `gorm:"column:description;not null;default:''"`
	Requirements string               `gorm:"column:requirements;not null;default:''"`
	Status       enums.PositionStatus `gorm:"column:status;not null;default:open"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Position) TableName() string { return "positions" }
