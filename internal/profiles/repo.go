package profiles

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// Repository handles profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to profile operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a profile by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByIDs loads every profile in ids. Missing ids are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// CreateIfMissing inserts the profile unless a row with the same id exists.
// It reports whether a row was written.
func (r *Repository) CreateIfMissing(ctx context.Context, profile *models.Profile) (bool, error) {
	if profile == nil {
		return false, fmt.Errorf("profile is required")
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(profile)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// editableColumns are the profile columns a member may change directly. The
// rating columns are owned by the review transactions.
var editableColumns = map[string]struct{}{
	"name": {}, "bio": {}, "skills": {}, "experience": {}, "contact": {},
	"avatar_url": {}, "user_type": {}, "professional_summary": {}, "location": {},
	"timezone": {}, "availability_status": {}, "skill_proficiencies": {},
	"achievements": {}, "social_links": {}, "investment_focus": {},
	"investment_range_min": {}, "investment_range_max": {}, "portfolio_size": {},
}

// Update writes only the named editable columns of profile.
func (r *Repository) Update(ctx context.Context, profile *models.Profile, columns []string) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	selected := make([]string, 0, len(columns)+1)
	for _, column := range columns {
		if _, ok := editableColumns[column]; !ok {
			return fmt.Errorf("profile column %q is not editable", column)
		}
		selected = append(selected, column)
	}
	if len(selected) == 0 {
		return nil
	}
	selected = append(selected, "updated_at")
	res := r.db.WithContext(ctx).Model(profile).Select(selected).Updates(profile)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateAverageRatingWithTx writes the denormalized review average.
func (r *Repository) UpdateAverageRatingWithTx(tx *gorm.DB, id uuid.UUID, rating float64) error {
	return r.updateColumnWithTx(tx, id, "average_rating", rating)
}

// UpdateInvestorRatingWithTx writes the denormalized investor review average.
func (r *Repository) UpdateInvestorRatingWithTx(tx *gorm.DB, id uuid.UUID, rating float64) error {
	return r.updateColumnWithTx(tx, id, "investor_rating", rating)
}

func (r *Repository) updateColumnWithTx(tx *gorm.DB, id uuid.UUID, column string, value any) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	res := tx.Model(&models.Profile{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
