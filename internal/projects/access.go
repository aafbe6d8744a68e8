package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

// Lookup is the read surface other services need to authorize project writes.
type Lookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// Load fetches a project, mapping a missing row to NOT_FOUND.
func Load(ctx context.Context, lookup Lookup, id uuid.UUID) (*models.Project, error) {
	project, err := lookup.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}
	return project, nil
}

// AuthorizeOwner loads the project and fails with FORBIDDEN unless actorID owns it.
func AuthorizeOwner(ctx context.Context, lookup Lookup, actorID, projectID uuid.UUID) (*models.Project, error) {
	project, err := Load(ctx, lookup, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the project owner can do that")
	}
	return project, nil
}
