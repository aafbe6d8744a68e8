package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/members"
	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

func seedApplication(t *testing.T, f *fixture, positionID uuid.UUID, at time.Time) *models.Application {
	t.Helper()
	app := &models.Application{
		PositionID:  positionID,
		ApplicantID: f.applicant.ID,
		Message:     "Count me in",
		Status:      enums.ApplicationStatusPending,
		CreatedAt:   at,
	}
	require.NoError(t, NewRepository(f.conn).Create(context.Background(), app))
	return app
}

func TestRepositoryListByProjectSpansPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewRepository(f.conn)

	designer := &models.Position{ProjectID: f.project.ID, Title: "Designer", Status: enums.PositionStatusOpen}
	require.NoError(t, f.conn.Omit("Project").Create(designer).Error)
	elsewhere := &models.Project{OwnerID: f.owner.ID, Title: "Wind", Description: "Offshore wind", Category: "energy"}
	require.NoError(t, f.conn.Omit("Owner").Create(elsewhere).Error)
	foreign := &models.Position{ProjectID: elsewhere.ID, Title: "CFO", Status: enums.PositionStatusOpen}
	require.NoError(t, f.conn.Omit("Project").Create(foreign).Error)

	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	first := seedApplication(t, f, f.position.ID, base)
	second := seedApplication(t, f, designer.ID, base.Add(time.Minute))
	seedApplication(t, f, foreign.ID, base.Add(2*time.Minute))

	rows, err := repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, second.ID, rows[0].ID)
	require.Equal(t, first.ID, rows[1].ID)
	require.Equal(t, "Designer", rows[0].Position.Title)
	require.Equal(t, "Linus", rows[0].Applicant.Name)

	byPosition, err := repo.ListByPosition(ctx, f.position.ID)
	require.NoError(t, err)
	require.Len(t, byPosition, 1)
	require.Equal(t, first.ID, byPosition[0].ID)
}

func TestRepositoryUpdateStatusWithTx(t *testing.T) {
	f := newFixture(t)
	repo := NewRepository(f.conn)
	app := seedApplication(t, f, f.position.ID, time.Now().UTC())

	require.NoError(t, repo.UpdateStatusWithTx(f.conn, app.ID, enums.ApplicationStatusRejected))
	stored, err := repo.FindByID(context.Background(), app.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ApplicationStatusRejected, stored.Status)
	require.Equal(t, f.project.ID, stored.Position.Project.ID)

	require.ErrorIs(t, repo.UpdateStatusWithTx(f.conn, uuid.New(), enums.ApplicationStatusRejected), gorm.ErrRecordNotFound)
	require.ErrorIs(t, repo.UpdateStatusWithTx(nil, app.ID, enums.ApplicationStatusRejected), gorm.ErrInvalidTransaction)
}

func TestAcceptWritesStatusAndMembershipTogether(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewRepository(f.conn)
	memberRepo := members.NewRepository(f.conn)
	app := seedApplication(t, f, f.position.ID, time.Now().UTC())

	accept := func(tx *gorm.DB) error {
		if err := repo.UpdateStatusWithTx(tx, app.ID, enums.ApplicationStatusAccepted); err != nil {
			return err
		}
		_, err := memberRepo.EnsureWithTx(tx, &models.ProjectMember{ProjectID: f.project.ID, UserID: f.applicant.ID, Role: "CTO"})
		return err
	}

	boom := errors.New("boom")
	err := db.FromConn(f.conn).WithTx(ctx, func(tx *gorm.DB) error {
		if err := accept(tx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ApplicationStatusPending, stored.Status)
	require.Zero(t, f.memberCount(t))

	require.NoError(t, db.FromConn(f.conn).WithTx(ctx, accept))
	stored, err = repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ApplicationStatusAccepted, stored.Status)
	require.EqualValues(t, 1, f.memberCount(t))
}
