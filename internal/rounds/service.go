package rounds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type roundRepository interface {
	List(ctx context.Context, projectID *uuid.UUID) ([]models.InvestmentRound, error)
	ListOpen(ctx context.Context, filter OpenFilter) ([]models.InvestmentRound, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.InvestmentRound, error)
	Create(ctx context.Context, round *models.InvestmentRound) error
	Update(ctx context.Context, round *models.InvestmentRound, columns []string) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// Service exposes investment round operations.
type Service interface {
	List(ctx context.Context, projectID *uuid.UUID) ([]RoundDTO, error)
	ListOpen(ctx context.Context, filter OpenFilter) ([]RoundDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RoundDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreateRoundInput) (*RoundDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateRoundInput) (*RoundDTO, error)
	CloseExpired(ctx context.Context) (int64, error)
}

// CreateRoundInput describes a new funding round.
type CreateRoundInput struct {
	ProjectID     uuid.UUID
	RoundName     string
	AmountSeeking decimal.Decimal
	Valuation     decimal.Decimal
	EquityOffered decimal.Decimal
	MinInvestment decimal.Decimal
	MaxInvestment decimal.Decimal
	Description   string
	Terms         string
	Deadline      time.Time
}

// UpdateRoundInput captures the mutable round fields.
type UpdateRoundInput struct {
	RoundName     *string
	AmountSeeking *decimal.Decimal
	Valuation     *decimal.Decimal
	EquityOffered *decimal.Decimal
	MinInvestment *decimal.Decimal
	MaxInvestment *decimal.Decimal
	Description   *string
	Terms         *string
	Status        *enums.RoundStatus
	Deadline      *time.Time
}

// ServiceParams wires the round service.
type ServiceParams struct {
	Repo     roundRepository
	Projects projects.Lookup
	Now      func() time.Time
}

type service struct {
	repo     roundRepository
	projects projects.Lookup
	now      func() time.Time
}

// NewService builds a round service.
func NewService(params ServiceParams) (Service, error) {
	switch {
	case params.Repo == nil:
		return nil, fmt.Errorf("round repository required")
	case params.Projects == nil:
		return nil, fmt.Errorf("project lookup required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, projects: params.Projects, now: now}, nil
}

func (s *service) List(ctx context.Context, projectID *uuid.UUID) ([]RoundDTO, error) {
	rows, err := s.repo.List(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rounds")
	}
	return FromModels(rows, s.now()), nil
}

func (s *service) ListOpen(ctx context.Context, filter OpenFilter) ([]RoundDTO, error) {
	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"min_amount": "Minimum amount cannot exceed maximum amount"})
	}
	filter.Category = strings.TrimSpace(filter.Category)
	rows, err := s.repo.ListOpen(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list open rounds")
	}
	return FromModels(rows, s.now()), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RoundDTO, error) {
	round, err := Load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return FromModel(round, s.now()), nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateRoundInput) (*RoundDTO, error) {
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, input.ProjectID); err != nil {
		return nil, err
	}
	round := &models.InvestmentRound{
		ProjectID:     input.ProjectID,
		RoundName:     strings.TrimSpace(input.RoundName),
		AmountSeeking: input.AmountSeeking,
		AmountRaised:  decimal.Zero,
		Valuation:     input.Valuation,
		EquityOffered: input.EquityOffered,
		MinInvestment: input.MinInvestment,
		MaxInvestment: input.MaxInvestment,
		Description:   strings.TrimSpace(input.Description),
		Terms:         strings.TrimSpace(input.Terms),
		Status:        enums.RoundStatusOpen,
		Deadline:      input.Deadline.UTC(),
	}
	if err := validateRound(round, true, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, round); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create round")
	}
	return s.Get(ctx, round.ID)
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateRoundInput) (*RoundDTO, error) {
	round, err := Load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, round.ProjectID); err != nil {
		return nil, err
	}
	columns := applyUpdate(round, input)
	// reopening is only allowed while the deadline is still ahead
	reopening := input.Status != nil && *input.Status == enums.RoundStatusOpen
	if err := validateRound(round, input.Deadline != nil || reopening, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, round, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update round")
	}
	return FromModel(round, s.now()), nil
}

func (s *service) CloseExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.CloseExpired(ctx, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close expired rounds")
	}
	return n, nil
}

// applyUpdate copies the set fields onto r and returns the columns it touched.
func applyUpdate(r *models.InvestmentRound, in UpdateRoundInput) []string {
	var columns []string
	if in.RoundName != nil {
		r.RoundName = strings.TrimSpace(*in.RoundName)
		columns = append(columns, "round_name")
	}
	if in.AmountSeeking != nil {
		r.AmountSeeking = *in.AmountSeeking
		columns = append(columns, "amount_seeking")
	}
	if in.Valuation != nil {
		r.Valuation = *in.Valuation
		columns = append(columns, "valuation")
	}
	if in.EquityOffered != nil {
		r.EquityOffered = *in.EquityOffered
		columns = append(columns, "equity_offered")
	}
	if in.MinInvestment != nil {
		r.MinInvestment = *in.MinInvestment
		columns = append(columns, "min_investment")
	}
	if in.MaxInvestment != nil {
		r.MaxInvestment = *in.MaxInvestment
		columns = append(columns, "max_investment")
	}
	if in.Description != nil {
		r.Description = strings.TrimSpace(*in.Description)
		columns = append(columns, "description")
	}
	if in.Terms != nil {
		r.Terms = strings.TrimSpace(*in.Terms)
		columns = append(columns, "terms")
	}
	if in.Status != nil {
		r.Status = *in.Status
		columns = append(columns, "status")
	}
	if in.Deadline != nil {
		r.Deadline = in.Deadline.UTC()
		columns = append(columns, "deadline")
	}
	return columns
}

// Lookup is the read surface other services use to resolve rounds.
type Lookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.InvestmentRound, error)
}

// Load fetches a round, mapping a missing row to NOT_FOUND.
func Load(ctx context.Context, lookup Lookup, id uuid.UUID) (*models.InvestmentRound, error) {
	round, err := lookup.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "investment round not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load round")
	}
	return round, nil
}

func validateRound(r *models.InvestmentRound, checkDeadline bool, now time.Time) error {
	details := map[string]string{}
	if r.RoundName == "" {
		details["round_name"] = "Please enter a round name"
	}
	if !r.AmountSeeking.IsPositive() {
		details["amount_seeking"] = "Amount seeking must be greater than 0"
	}
	switch {
	case !r.MinInvestment.IsPositive():
		details["min_investment"] = "Minimum investment must be greater than 0"
	case r.MinInvestment.GreaterThan(r.MaxInvestment):
		details["max_investment"] = "Maximum investment must be at least the minimum investment"
	case r.MaxInvestment.GreaterThan(r.AmountSeeking):
		details["max_investment"] = "Maximum investment cannot exceed the amount sought"
	}
	if r.Valuation.IsNegative() {
		details["valuation"] = "Valuation cannot be negative"
	}
	if !r.EquityOffered.IsPositive() || r.EquityOffered.GreaterThan(hundred) {
		details["equity_offered"] = "Equity offered must be between 0 and 100 percent"
	}
	if !r.Status.IsValid() {
		details["status"] = "Status must be open or closed"
	}
	if checkDeadline && !r.Deadline.After(now) {
		details["deadline"] = "Deadline must be in the future"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
