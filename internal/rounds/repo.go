package rounds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// OpenFilter narrows the open-rounds listing.
type OpenFilter struct {
	Category  string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Repository handles investment round persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to round operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns rounds newest first, optionally for a single project.
func (r *Repository) List(ctx context.Context, projectID *uuid.UUID) ([]models.InvestmentRound, error) {
	q := r.db.WithContext(ctx).Preload("Project.Owner").Order("created_at DESC")
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	var rows []models.InvestmentRound
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOpen returns open rounds matching the filter, soonest deadline first.
func (r *Repository) ListOpen(ctx context.Context, filter OpenFilter) ([]models.InvestmentRound, error) {
	db := r.db.WithContext(ctx)
	q := db.
		Preload("Project.Owner").
		Where("status = ?", enums.RoundStatusOpen)
	if filter.Category != "" {
		q = q.Where("project_id IN (?)",
			db.Model(&models.Project{}).Select("id").Where("category = ?", filter.Category))
	}
	if filter.MinAmount != nil {
		q = q.Where("amount_seeking >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		q = q.Where("amount_seeking <= ?", *filter.MaxAmount)
	}
	var rows []models.InvestmentRound
	if err := q.Order("deadline ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a round with its project and owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InvestmentRound, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *Repository) findByID(q *gorm.DB, id uuid.UUID) (*models.InvestmentRound, error) {
	var round models.InvestmentRound
	if err := q.Preload("Project.Owner").Where("id = ?", id).First(&round).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

// Create persists a new round.
func (r *Repository) Create(ctx context.Context, round *models.InvestmentRound) error {
	if round == nil {
		return fmt.Errorf("round is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(round).Error
}

// editableColumns are the round columns an owner may change. amount_raised
// only moves through AddRaisedWithTx.
var editableColumns = map[string]struct{}{
	"round_name": {}, "amount_seeking": {}, "valuation": {}, "equity_offered": {},
	"min_investment": {}, "max_investment": {}, "description": {}, "terms": {},
	"status": {}, "deadline": {},
}

// Update writes only the named editable columns of round.
func (r *Repository) Update(ctx context.Context, round *models.InvestmentRound, columns []string) error {
	if round == nil {
		return fmt.Errorf("round is required")
	}
	selected := make([]string, 0, len(columns)+1)
	for _, column := range columns {
		if _, ok := editableColumns[column]; !ok {
			return fmt.Errorf("round column %q is not editable", column)
		}
		selected = append(selected, column)
	}
	if len(selected) == 0 {
		return nil
	}
	selected = append(selected, "updated_at")
	res := r.db.WithContext(ctx).
		Model(&models.InvestmentRound{ID: round.ID}).
		Select(selected).
		Omit(clause.Associations).
		Updates(round)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddRaisedWithTx increments amount_raised by amount.
func (r *Repository) AddRaisedWithTx(tx *gorm.DB, roundID uuid.UUID, amount decimal.Decimal) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	res := tx.Model(&models.InvestmentRound{}).
		Where("id = ?", roundID).
		Update("amount_raised", gorm.Expr("amount_raised + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseExpired marks open rounds whose deadline is at or before now as closed
// and returns how many changed.
func (r *Repository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InvestmentRound{}).
		Where("status = ? AND deadline <= ?", enums.RoundStatusOpen, now.UTC()).
		Updates(map[string]any{"status": enums.RoundStatusClosed, "updated_at": now.UTC()})
	return res.RowsAffected, res.Error
}
