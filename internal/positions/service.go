package positions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type positionRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Position, error)
	ListOpen(ctx context.Context) ([]models.Position, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Position, error)
	Create(ctx context.Context, position *models.Position) error
	Update(ctx context.Context, position *models.Position) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes position operations.
type Service interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]PositionDTO, error)
	ListOpen(ctx context.Context) ([]PositionDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PositionDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreatePositionInput) (*PositionDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdatePositionInput) (*PositionDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

// CreatePositionInput describes a new seat on a project.
type CreatePositionInput struct {
	ProjectID    uuid.UUID
	Title        string
	Description  string
	Requirements string
}

// UpdatePositionInput captures the mutable position fields.
type UpdatePositionInput struct {
	Title        *string
	Description  *string
	Requirements *string
	Status       *enums.PositionStatus
}

type service struct {
	repo     positionRepository
	projects projects.Lookup
}

// NewService builds a position service.
func NewService(repo positionRepository, projectLookup projects.Lookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("position repository required")
	}
	if projectLookup == nil {
		return nil, fmt.Errorf("project lookup required")
	}
	return &service{repo: repo, projects: projectLookup}, nil
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]PositionDTO, error) {
	if _, err := projects.Load(ctx, s.projects, projectID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list project positions")
	}
	return FromModels(rows), nil
}

func (s *service) ListOpen(ctx context.Context) ([]PositionDTO, error) {
	rows, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list open positions")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PositionDTO, error) {
	position, err := Load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return FromModel(position), nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreatePositionInput) (*PositionDTO, error) {
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, input.ProjectID); err != nil {
		return nil, err
	}
	position := &models.Position{
		ProjectID:    input.ProjectID,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Requirements: strings.TrimSpace(input.Requirements),
		Status:       enums.PositionStatusOpen,
	}
	if err := validatePosition(position); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, position); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create position")
	}
	return s.Get(ctx, position.ID)
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdatePositionInput) (*PositionDTO, error) {
	position, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		position.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		position.Description = strings.TrimSpace(*input.Description)
	}
	if input.Requirements != nil {
		position.Requirements = strings.TrimSpace(*input.Requirements)
	}
	if input.Status != nil {
		position.Status = *input.Status
	}
	if err := validatePosition(position); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, position); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update position")
	}
	return FromModel(position), nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.authorize(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "position not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete position")
	}
	return nil
}

func (s *service) authorize(ctx context.Context, actorID, id uuid.UUID) (*models.Position, error) {
	position, err := Load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, position.ProjectID); err != nil {
		return nil, err
	}
	return position, nil
}

// Lookup is the read surface other services use to resolve positions.
type Lookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Position, error)
}

// Load fetches a position, mapping a missing row to NOT_FOUND.
func Load(ctx context.Context, lookup Lookup, id uuid.UUID) (*models.Position, error) {
	position, err := lookup.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "position not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load position")
	}
	return position, nil
}

func validatePosition(p *models.Position) error {
	if details := positionDetails(p); len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func positionDetails(p *models.Position) map[string]string {
	details := map[string]string{}
	if n := utf8.RuneCountInString(p.Title); n < 2 || n > 200 {
		details["title"] = "Title must be between 2 and 200 characters"
	}
	if !p.Status.IsValid() {
		details["status"] = "Status must be open or closed"
	}
	return details
}
