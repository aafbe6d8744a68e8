package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// Application is a candidate's request to fill a position.
type Application struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	PositionID  uuid.UUID               `gorm:"column:position_id;type:uuid;not null;index"`
	Position    *Position               `gorm:"foreignKey:PositionID;references:ID"`
	ApplicantID uuid.UUID               `gorm:"column:applicant_id;type:uuid;not null;index"`
	Applicant   *Profile                `gorm:"foreignKey:ApplicantID;references:ID"`
	Message     string                  `gorm:"column:message;not null"`
	Status      enums.ApplicationStatus `gorm:"column:status;not null;default:pending"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (Application) TableName() string { return "applications" }

// ProjectMember grants a user a role label on a project's team.
type ProjectMember struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_project_members_project_user"`
	Project   *Project  `gorm:"foreignKey:ProjectID;references:ID"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_project_members_project_user"`
	User      *Profile  `gorm:"foreignKey:UserID;references:ID"`
	Role      string    `gorm:"column:role;not null"`
	JoinedAt  time.Time `gorm:"column:joined_at;autoCreateTime"`
}

func (ProjectMember) TableName() string { return "project_members" }
