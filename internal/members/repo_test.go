package members

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/db/dbtest"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

func seedProject(t *testing.T, conn *gorm.DB) (*models.Profile, *models.Project) {
	t.Helper()
	owner := &models.Profile{ID: uuid.New(), Name: "Grace", UserType: enums.UserTypeFounder}
	require.NoError(t, conn.Create(owner).Error)
	project := &models.Project{OwnerID: owner.ID, Title: "Solar", Description: "Community solar", Category: "energy"}
	require.NoError(t, conn.Omit("Owner").Create(project).Error)
	return owner, project
}

func TestRepositoryEnsureWithTxIsIdempotent(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	_, project := seedProject(t, conn)
	member := &models.Profile{ID: uuid.New(), Name: "Linus", UserType: enums.UserTypeFounder}
	require.NoError(t, conn.Create(member).Error)

	for i := 0; i < 2; i++ {
		err := conn.Transaction(func(tx *gorm.DB) error {
			created, err := repo.EnsureWithTx(tx, &models.ProjectMember{ProjectID: project.ID, UserID: member.ID, Role: "CTO"})
			require.Equal(t, i == 0, created)
			return err
		})
		require.NoError(t, err)
	}

	rows, err := repo.ListByProject(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Linus", rows[0].User.Name)
	require.Equal(t, "Solar", rows[0].Project.Title)

	_, err = repo.EnsureWithTx(nil, &models.ProjectMember{})
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)
}

func TestRepositoryCreateDuplicateIsUniqueViolation(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	owner, project := seedProject(t, conn)

	require.NoError(t, repo.Create(ctx, &models.ProjectMember{ProjectID: project.ID, UserID: owner.ID, Role: "Founder"}))
	err := repo.Create(ctx, &models.ProjectMember{ProjectID: project.ID, UserID: owner.ID, Role: "Founder"})
	require.Error(t, err)
	require.True(t, db.IsUniqueViolation(err, ""))

	ids, err := repo.ProjectIDsForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{project.ID}, ids)

	require.NoError(t, repo.Delete(ctx, project.ID, owner.ID))
	require.ErrorIs(t, repo.Delete(ctx, project.ID, owner.ID), gorm.ErrRecordNotFound)
}
