package applications

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/members"
	"github.com/cofoundr/cofoundr-backend/internal/positions"
	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/db/dbtest"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type fixture struct {
	conn      *gorm.DB
	svc       Service
	owner     *models.Profile
	applicant *models.Profile
	project   *models.Project
	position  *models.Position
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)

	owner := &models.Profile{ID: uuid.New(), Name: "Grace", UserType: enums.UserTypeFounder}
	applicant := &models.Profile{ID: uuid.New(), Name: "Linus", UserType: enums.UserTypeFounder}
	require.NoError(t, conn.Create(owner).Error)
	require.NoError(t, conn.Create(applicant).Error)
	project := &models.Project{OwnerID: owner.ID, Title: "Solar", Description: "Community solar", Category: "energy"}
	require.NoError(t, conn.Omit("Owner").Create(project).Error)
	position := &models.Position{ProjectID: project.ID, Title: "CTO", Status: enums.PositionStatusOpen}
	require.NoError(t, conn.Omit("Project").Create(position).Error)

	projectRepo := projects.NewRepository(conn)
	memberSvc, err := members.NewService(members.NewRepository(conn), projectRepo)
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(conn),
		Positions: positions.NewRepository(conn),
		Projects:  projectRepo,
		Members:   memberSvc,
		Tx:        db.FromConn(conn),
	})
	require.NoError(t, err)

	return &fixture{conn: conn, svc: svc, owner: owner, applicant: applicant, project: project, position: position}
}

func (f *fixture) memberCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.conn.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", f.project.ID, f.applicant.ID).
		Count(&count).Error)
	return count
}

func TestCreateRejectsBlankMessageBeforeLookup(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.applicant.ID, CreateApplicationInput{PositionID: uuid.New(), Message: "   "})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	require.Equal(t, "Please write a cover letter", pkgerrors.As(err).Message())
}

func TestCreateGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.applicant.ID, CreateApplicationInput{PositionID: uuid.New(), Message: "Hire me"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.Create(ctx, f.owner.ID, CreateApplicationInput{PositionID: f.position.ID, Message: "Hire me"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	require.NoError(t, f.conn.Model(&models.Position{}).Where("id = ?", f.position.ID).Update("status", enums.PositionStatusClosed).Error)
	_, err = f.svc.Create(ctx, f.applicant.ID, CreateApplicationInput{PositionID: f.position.ID, Message: "Hire me"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestAcceptCreatesSingleMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, f.applicant.ID, CreateApplicationInput{PositionID: f.position.ID, Message: "I have shipped grids before"})
	require.NoError(t, err)
	require.Equal(t, enums.ApplicationStatusPending, app.Status)

	_, err = f.svc.UpdateStatus(ctx, f.applicant.ID, app.ID, enums.ApplicationStatusAccepted)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	for i := 0; i < 2; i++ {
		updated, err := f.svc.UpdateStatus(ctx, f.owner.ID, app.ID, enums.ApplicationStatusAccepted)
		require.NoError(t, err)
		require.Equal(t, enums.ApplicationStatusAccepted, updated.Status)
	}
	require.EqualValues(t, 1, f.memberCount(t))

	var member models.ProjectMember
	require.NoError(t, f.conn.Where("project_id = ?", f.project.ID).First(&member).Error)
	require.Equal(t, "CTO", member.Role)

	_, err = f.svc.UpdateStatus(ctx, f.owner.ID, app.ID, enums.ApplicationStatusRejected)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestRejectDoesNotGrantMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, f.applicant.ID, CreateApplicationInput{PositionID: f.position.ID, Message: "Let me help"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, f.owner.ID, app.ID, enums.ApplicationStatusRejected)
	require.NoError(t, err)
	require.Equal(t, enums.ApplicationStatusRejected, updated.Status)
	require.Zero(t, f.memberCount(t))

	listed, err := f.svc.ListByProject(ctx, f.owner.ID, f.project.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Linus", listed[0].Applicant.Name)
	require.Equal(t, "CTO", listed[0].Position.Title)

	mine, err := f.svc.ListByApplicant(ctx, f.applicant.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Solar", mine[0].Position.Project.Title)

	_, err = f.svc.ListByPosition(ctx, f.applicant.ID, f.position.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestUpdateStatusUnknownApplication(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateStatus(context.Background(), f.owner.ID, uuid.New(), enums.ApplicationStatusAccepted)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
