package members

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type memberRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProjectMember, error)
	Create(ctx context.Context, member *models.ProjectMember) error
	EnsureWithTx(tx *gorm.DB, member *models.ProjectMember) (bool, error)
	Delete(ctx context.Context, projectID, userID uuid.UUID) error
}

// Service exposes project team operations.
type Service interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]MemberDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]MemberDTO, error)
	Ensure(tx *gorm.DB, projectID, userID uuid.UUID, role string) error
	Add(ctx context.Context, actorID uuid.UUID, input AddMemberInput) (*MemberDTO, error)
	Remove(ctx context.Context, actorID, projectID, userID uuid.UUID) error
}

// AddMemberInput captures an owner-driven team addition.
type AddMemberInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
}

type service struct {
	repo     memberRepository
	projects projects.Lookup
}

// NewService builds a membership service.
func NewService(repo memberRepository, projectLookup projects.Lookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("member repository required")
	}
	if projectLookup == nil {
		return nil, fmt.Errorf("project lookup required")
	}
	return &service{repo: repo, projects: projectLookup}, nil
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]MemberDTO, error) {
	rows, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list project members")
	}
	return FromModels(rows), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]MemberDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user memberships")
	}
	return FromModels(rows), nil
}

// Ensure grants the membership inside the caller's transaction. Repeats are no-ops.
func (s *service) Ensure(tx *gorm.DB, projectID, userID uuid.UUID, role string) error {
	member := &models.ProjectMember{ProjectID: projectID, UserID: userID, Role: strings.TrimSpace(role)}
	if _, err := s.repo.EnsureWithTx(tx, member); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure membership")
	}
	return nil
}

func (s *service) Add(ctx context.Context, actorID uuid.UUID, input AddMemberInput) (*MemberDTO, error) {
	role := strings.TrimSpace(input.Role)
	if role == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
			"role": "Please enter a role",
		})
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
			"user_id": "Please choose a member",
		})
	}
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, input.ProjectID); err != nil {
		return nil, err
	}

	member := &models.ProjectMember{ProjectID: input.ProjectID, UserID: input.UserID, Role: role}
	if err := s.repo.Create(ctx, member); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user is already a member of this project")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add member")
	}
	return FromModel(member), nil
}

func (s *service) Remove(ctx context.Context, actorID, projectID, userID uuid.UUID) error {
	project, err := projects.AuthorizeOwner(ctx, s.projects, actorID, projectID)
	if err != nil {
		return err
	}
	if userID == project.OwnerID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "the project owner cannot be removed")
	}
	if err := s.repo.Delete(ctx, projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove member")
	}
	return nil
}
