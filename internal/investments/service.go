package investments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/rounds"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type investmentRepository interface {
	Create(ctx context.Context, investment *models.Investment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Investment, error)
	List(ctx context.Context, filter ListFilter) ([]models.Investment, error)
	ListConfirmedByInvestor(ctx context.Context, investorID uuid.UUID) ([]models.Investment, error)
	UpdateStatusWithTx(tx *gorm.DB, id uuid.UUID, from, to enums.InvestmentStatus) error
}

// RoundStore is the round surface investments need.
type RoundStore interface {
	rounds.Lookup
	AddRaisedWithTx(tx *gorm.DB, roundID uuid.UUID, amount decimal.Decimal) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes investment operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateInvestmentInput) (*InvestmentDTO, error)
	List(ctx context.Context, actorID uuid.UUID, filter ListFilter) ([]InvestmentDTO, error)
	UpdateStatus(ctx context.Context, actorID, id uuid.UUID, target enums.InvestmentStatus) (*InvestmentDTO, error)
	Portfolio(ctx context.Context, investorID uuid.UUID) (*Portfolio, error)
}

// CreateInvestmentInput records an investor's commitment to a round.
type CreateInvestmentInput struct {
	RoundID uuid.UUID
	Amount  decimal.Decimal
	Notes   string
}

// ServiceParams wires the investment service.
type ServiceParams struct {
	Repo          investmentRepository
	Rounds        RoundStore
	Tx            txRunner
	EnforceBounds bool
	Now           func() time.Time
}

type service struct {
	repo          investmentRepository
	rounds        RoundStore
	tx            txRunner
	enforceBounds bool
	now           func() time.Time
}

// NewService builds an investment service.
func NewService(params ServiceParams) (Service, error) {
	switch {
	case params.Repo == nil:
		return nil, fmt.Errorf("investment repository required")
	case params.Rounds == nil:
		return nil, fmt.Errorf("round store required")
	case params.Tx == nil:
		return nil, fmt.Errorf("transaction runner required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:          params.Repo,
		rounds:        params.Rounds,
		tx:            params.Tx,
		enforceBounds: params.EnforceBounds,
		now:           now,
	}, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateInvestmentInput) (*InvestmentDTO, error) {
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"amount": "Please enter an investment amount"})
	}
	round, err := rounds.Load(ctx, s.rounds, input.RoundID)
	if err != nil {
		return nil, err
	}
	if round.Status != enums.RoundStatusOpen {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "this investment round is closed")
	}
	if s.enforceBounds && (input.Amount.LessThan(round.MinInvestment) || input.Amount.GreaterThan(round.MaxInvestment)) {
		msg := fmt.Sprintf("Investment must be between $%s and $%s", formatDollars(round.MinInvestment), formatDollars(round.MaxInvestment))
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"amount": msg})
	}

	investment := &models.Investment{
		RoundID:        round.ID,
		InvestorID:     actorID,
		AmountInvested: input.Amount,
		Status:         enums.InvestmentStatusPending,
		Notes:          strings.TrimSpace(input.Notes),
	}
	if err := s.repo.Create(ctx, investment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create investment")
	}
	return s.get(ctx, investment.ID)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, filter ListFilter) ([]InvestmentDTO, error) {
	if filter.RoundID == nil && filter.InvestorID == nil {
		filter.InvestorID = &actorID
	}
	if err := s.authorizeList(ctx, actorID, filter); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list investments")
	}
	return FromModels(rows, s.now()), nil
}

// authorizeList lets investors see their own investments and round owners see
// everything committed to their rounds.
func (s *service) authorizeList(ctx context.Context, actorID uuid.UUID, filter ListFilter) error {
	if filter.RoundID != nil {
		round, err := rounds.Load(ctx, s.rounds, *filter.RoundID)
		if err != nil {
			return err
		}
		if ownsRound(round, actorID) {
			return nil
		}
	}
	if filter.InvestorID != nil && *filter.InvestorID == actorID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "you can only view your own investments")
}

func (s *service) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, target enums.InvestmentStatus) (*InvestmentDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"status": "Status must be pending or confirmed"})
	}
	investment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsRound(investment.Round, actorID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the project owner can do that")
	}
	if investment.Status == target {
		return FromModel(investment, s.now()), nil
	}
	if investment.Status != enums.InvestmentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a confirmed investment cannot be changed")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusWithTx(tx, id, enums.InvestmentStatusPending, target); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "investment status changed concurrently")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update investment status")
		}
		if target == enums.InvestmentStatusConfirmed {
			if err := s.rounds.AddRaisedWithTx(tx, investment.RoundID, investment.AmountInvested); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update amount raised")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *service) Portfolio(ctx context.Context, investorID uuid.UUID) (*Portfolio, error) {
	rows, err := s.repo.ListConfirmedByInvestor(ctx, investorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list portfolio")
	}
	portfolio := BuildPortfolio(FromModels(rows, s.now()))
	return &portfolio, nil
}

func (s *service) get(ctx context.Context, id uuid.UUID) (*InvestmentDTO, error) {
	investment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(investment, s.now()), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Investment, error) {
	investment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "investment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load investment")
	}
	return investment, nil
}

func ownsRound(round *models.InvestmentRound, actorID uuid.UUID) bool {
	return round != nil && round.Project != nil && round.Project.OwnerID == actorID
}
