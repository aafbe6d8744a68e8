package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/positions"
	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type applicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error)
	ListByPosition(ctx context.Context, positionID uuid.UUID) ([]models.Application, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Application, error)
	UpdateStatusWithTx(tx *gorm.DB, id uuid.UUID, status enums.ApplicationStatus) error
}

// MembershipEnsurer grants team membership inside an open transaction.
type MembershipEnsurer interface {
	Ensure(tx *gorm.DB, projectID, userID uuid.UUID, role string) error
}

// Service exposes application operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateApplicationInput) (*ApplicationDTO, error)
	ListByApplicant(ctx context.Context, actorID uuid.UUID) ([]ApplicationDTO, error)
	ListByPosition(ctx context.Context, actorID, positionID uuid.UUID) ([]ApplicationDTO, error)
	ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]ApplicationDTO, error)
	UpdateStatus(ctx context.Context, actorID, id uuid.UUID, target enums.ApplicationStatus) (*ApplicationDTO, error)
}

// CreateApplicationInput is a candidate's cover letter for a position.
type CreateApplicationInput struct {
	PositionID uuid.UUID
	Message    string
}

// ServiceParams wires the application service.
type ServiceParams struct {
	Repo      applicationRepository
	Positions positions.Lookup
	Projects  projects.Lookup
	Members   MembershipEnsurer
	Tx        txRunner
}

type service struct {
	repo      applicationRepository
	positions positions.Lookup
	projects  projects.Lookup
	members   MembershipEnsurer
	tx        txRunner
}

// NewService builds an application service.
func NewService(params ServiceParams) (Service, error) {
	switch {
	case params.Repo == nil:
		return nil, fmt.Errorf("application repository required")
	case params.Positions == nil:
		return nil, fmt.Errorf("position lookup required")
	case params.Projects == nil:
		return nil, fmt.Errorf("project lookup required")
	case params.Members == nil:
		return nil, fmt.Errorf("membership ensurer required")
	case params.Tx == nil:
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      params.Repo,
		positions: params.Positions,
		projects:  params.Projects,
		members:   params.Members,
		tx:        params.Tx,
	}, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateApplicationInput) (*ApplicationDTO, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Please write a cover letter").WithDetails(map[string]string{
			"message": "Please write a cover letter",
		})
	}

	position, err := positions.Load(ctx, s.positions, input.PositionID)
	if err != nil {
		return nil, err
	}
	if position.Status != enums.PositionStatusOpen {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "this position is no longer accepting applications")
	}
	project, err := projects.Load(ctx, s.projects, position.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID == actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you cannot apply to your own project")
	}

	application := &models.Application{
		PositionID:  position.ID,
		ApplicantID: actorID,
		Message:     message,
		Status:      enums.ApplicationStatusPending,
	}
	if err := s.repo.Create(ctx, application); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}
	application.Position = position
	return FromModel(application), nil
}

func (s *service) ListByApplicant(ctx context.Context, actorID uuid.UUID) ([]ApplicationDTO, error) {
	rows, err := s.repo.ListByApplicant(ctx, actorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}
	return FromModels(rows), nil
}

func (s *service) ListByPosition(ctx context.Context, actorID, positionID uuid.UUID) ([]ApplicationDTO, error) {
	position, err := positions.Load(ctx, s.positions, positionID)
	if err != nil {
		return nil, err
	}
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, position.ProjectID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByPosition(ctx, positionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list position applications")
	}
	return FromModels(rows), nil
}

func (s *service) ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]ApplicationDTO, error) {
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, projectID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list project applications")
	}
	return FromModels(rows), nil
}

// UpdateStatus records the owner's decision. Accepting writes the status and
// the membership in one transaction; the membership insert is an upsert, so
// a repeated accept also repairs a missing seat without duplicating it.
func (s *service) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, target enums.ApplicationStatus) (*ApplicationDTO, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load application")
	}
	position := application.Position
	if position == nil {
		if position, err = positions.Load(ctx, s.positions, application.PositionID); err != nil {
			return nil, err
		}
	}
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, position.ProjectID); err != nil {
		return nil, err
	}

	changed, err := Transition(application.Status, target)
	if err != nil {
		return nil, err
	}
	if !changed && target != enums.ApplicationStatusAccepted {
		return FromModel(application), nil
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if changed {
			if err := s.repo.UpdateStatusWithTx(tx, application.ID, target); err != nil {
				return err
			}
		}
		if target == enums.ApplicationStatusAccepted {
			return s.members.Ensure(tx, position.ProjectID, application.ApplicantID, position.Title)
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application status")
	}

	application.Status = target
	return FromModel(application), nil
}
