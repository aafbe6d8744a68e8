package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID fills an empty primary key before insert so rows get ids without
// relying on database-side generators.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (p *Position) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

func (m *ProjectMember) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

func (r *InvestorReview) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

func (m *MRRRecord) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

func (r *InvestmentRound) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

func (i *Investment) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	return nil
}

func (s *StripeSubscription) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}
