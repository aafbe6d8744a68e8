package projects

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/pagination"
)

type projectRepository interface {
	List(ctx context.Context, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	CreateWithTx(tx *gorm.DB, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes project operations.
type Service interface {
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[ProjectDTO], error)
	Get(ctx context.Context, id uuid.UUID) (*ProjectDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]ProjectDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreateProjectInput) (*ProjectDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateProjectInput) (*ProjectDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

// CreateProjectInput captures the fields required to list a project.
// Positions, when present, are opened in the same transaction as the project.
type CreateProjectInput struct {
	Title       string
	Description string
	Category    string
	Website     string
	Positions   []PositionSeed
}

// PositionSeed is a seat listed together with a new project.
type PositionSeed struct {
	Title        string
	Description  string
	Requirements string
}

// MaxSeededPositions caps how many positions one create request may open.
const MaxSeededPositions = 10

// PositionSeeder validates and writes the positions submitted with a project.
// Validation details are keyed positions[i].field.
type PositionSeeder interface {
	ValidateSeeds(seeds []PositionSeed) map[string]string
	CreateSeedsWithTx(tx *gorm.DB, projectID uuid.UUID, seeds []PositionSeed) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Option configures optional service collaborators.
type Option func(*service)

// WithPositionSeeder lets Create open positions alongside the project.
func WithPositionSeeder(seeder PositionSeeder, tx txRunner) Option {
	return func(s *service) {
		s.seeder = seeder
		s.tx = tx
	}
}

// UpdateProjectInput captures the allowed project fields for mutation.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Category    *string
	Website     *string
}

type service struct {
	repo   projectRepository
	seeder PositionSeeder
	tx     txRunner
}

// NewService builds a project service with the provided repository.
func NewService(repo projectRepository, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("project repository required")
	}
	s := &service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	if (s.seeder == nil) != (s.tx == nil) {
		return nil, fmt.Errorf("position seeder and transaction runner must be set together")
	}
	return s, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[ProjectDTO], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return pagination.Page[ProjectDTO]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, err := s.repo.List(ctx, filter, params.Limit, cursor)
	if err != nil {
		return pagination.Page[ProjectDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list projects")
	}
	return pagination.BuildPage(FromModels(rows), params.Limit, func(p ProjectDTO) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	}), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProjectDTO, error) {
	project, err := Load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return FromModel(project), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]ProjectDTO, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner projects")
	}
	return FromModels(rows), nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateProjectInput) (*ProjectDTO, error) {
	project := &models.Project{
		OwnerID:     actorID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
	}
	website, err := normalizeWebsite(input.Website)
	if err != nil {
		return nil, err
	}
	project.Website = website

	details := projectDetails(project)
	if len(input.Positions) > 0 {
		if s.seeder == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "position seeding is not configured")
		}
		if len(input.Positions) > MaxSeededPositions {
			details["positions"] = fmt.Sprintf("You can list at most %d positions with a new project", MaxSeededPositions)
		}
		for field, msg := range s.seeder.ValidateSeeds(input.Positions) {
			details[field] = msg
		}
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if len(input.Positions) == 0 {
		if err := s.repo.Create(ctx, project); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
		}
		return s.Get(ctx, project.ID)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, project); err != nil {
			return err
		}
		return s.seeder.CreateSeedsWithTx(tx, project.ID, input.Positions)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project with positions")
	}
	return s.Get(ctx, project.ID)
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateProjectInput) (*ProjectDTO, error) {
	project, err := AuthorizeOwner(ctx, s.repo, actorID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		project.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		project.Category = strings.TrimSpace(*input.Category)
	}
	if input.Website != nil {
		website, err := normalizeWebsite(*input.Website)
		if err != nil {
			return nil, err
		}
		project.Website = website
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update project")
	}
	return FromModel(project), nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := AuthorizeOwner(ctx, s.repo, actorID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete project")
	}
	return nil
}

func validateProject(p *models.Project) error {
	if details := projectDetails(p); len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func projectDetails(p *models.Project) map[string]string {
	details := map[string]string{}
	if n := utf8.RuneCountInString(p.Title); n < 3 || n > 200 {
		details["title"] = "Title must be between 3 and 200 characters"
	}
	if utf8.RuneCountInString(p.Description) < 10 {
		details["description"] = "Description must be at least 10 characters"
	}
	if p.Category == "" {
		details["category"] = "Please choose a category"
	}
	return details
}

func normalizeWebsite(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	if !strings.HasPrefix(value, "http") {
		value = "https://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
			"website": "Please enter a valid URL",
		})
	}
	return value, nil
}
