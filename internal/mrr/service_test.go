package mrr

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/members"
	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/internal/subscriptions"
	"github.com/cofoundr/cofoundr-backend/pkg/db/dbtest"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type fixture struct {
	conn    *gorm.DB
	svc     Service
	owner   *models.Profile
	project *models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)

	owner := &models.Profile{ID: uuid.New(), Name: "Grace", UserType: enums.UserTypeFounder}
	require.NoError(t, conn.Create(owner).Error)
	project := &models.Project{OwnerID: owner.ID, Title: "Solar", Description: "Community solar", Category: "energy"}
	require.NoError(t, conn.Omit("Owner").Create(project).Error)
	require.NoError(t, conn.Omit("Project", "User").Create(&models.ProjectMember{ProjectID: project.ID, UserID: owner.ID, Role: "Founder"}).Error)

	svc, err := NewService(ServiceParams{
		Repo:          NewRepository(conn),
		Members:       members.NewRepository(conn),
		Projects:      projects.NewRepository(conn),
		Subscriptions: subscriptions.NewRepository(conn),
	})
	require.NoError(t, err)
	return &fixture{conn: conn, svc: svc, owner: owner, project: project}
}

func TestAddRecordUpsertsByMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.AddRecord(ctx, f.owner.ID, AddRecordInput{ProjectID: f.project.ID, Month: "2025-05", Revenue: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	again, err := f.svc.AddRecord(ctx, f.owner.ID, AddRecordInput{ProjectID: f.project.ID, Month: "2025-05", Revenue: decimal.NewFromInt(1200)})
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	_, err = f.svc.AddRecord(ctx, f.owner.ID, AddRecordInput{ProjectID: f.project.ID, Month: "2025-06", Revenue: decimal.NewFromInt(1800)})
	require.NoError(t, err)

	rows, err := f.svc.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2025-05", rows[0].Month)
	require.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(1200)))
	require.Equal(t, 50.0, SeriesGrowth(rows))
}

func TestAddRecordGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddRecord(ctx, f.owner.ID, AddRecordInput{ProjectID: f.project.ID, Month: "May 2025", Revenue: decimal.NewFromInt(-1)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	require.Len(t, pkgerrors.As(err).Details(), 2)

	_, err = f.svc.AddRecord(ctx, uuid.New(), AddRecordInput{ProjectID: f.project.ID, Month: "2025-05", Revenue: decimal.NewFromInt(10)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestDashboardTotalsLatestAndPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for month, revenue := range map[string]int64{"2025-04": 700, "2025-05": 1000, "2025-06": 1500} {
		_, err := f.svc.AddRecord(ctx, f.owner.ID, AddRecordInput{ProjectID: f.project.ID, Month: month, Revenue: decimal.NewFromInt(revenue)})
		require.NoError(t, err)
	}

	dash, err := f.svc.Dashboard(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, dash.Projects, 1)
	require.True(t, dash.TotalCurrent.Equal(decimal.NewFromInt(1500)))
	require.True(t, dash.TotalPrevious.Equal(decimal.NewFromInt(1000)))
	require.Equal(t, 50.0, dash.Growth)

	require.Equal(t, "Solar", dash.Projects[0].ProjectTitle)
}

func TestRecomputeFromSubscriptions(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	for i, sub := range []models.StripeSubscription{
		{StripeSubscriptionID: "sub_a", Status: enums.SubscriptionStatusActive, AmountCents: 4950},
		{StripeSubscriptionID: "sub_b", Status: enums.SubscriptionStatusActive, AmountCents: 10000},
		{StripeSubscriptionID: "sub_c", Status: enums.SubscriptionStatusCanceled, AmountCents: 99900},
	} {
		sub.ProjectID = f.project.ID
		require.NoError(t, f.conn.Create(&sub).Error, "subscription %d", i)
	}

	var dto *RecordDTO
	err := f.conn.Transaction(func(tx *gorm.DB) error {
		var err error
		dto, err = f.svc.RecomputeFromSubscriptions(tx, f.project.ID, now)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, "2025-06", dto.Month)
	require.True(t, dto.Revenue.Equal(decimal.NewFromInt(150)), "got %s", dto.Revenue)
	require.Equal(t, 2, dto.StripeSubscriptionCount)

	_, err = f.svc.RecomputeFromSubscriptions(nil, f.project.ID, now)
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)
}

type stubMembers []uuid.UUID

func (s stubMembers) ProjectIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s, nil
}

type stubProjects struct{}

func (stubProjects) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubProjects) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Project, error) {
	return nil, nil
}

type stubRecords struct{}

func (stubRecords) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.MRRRecord, error) {
	return nil, nil
}

func (stubRecords) ListByProjects(ctx context.Context, ids []uuid.UUID) ([]models.MRRRecord, error) {
	return nil, nil
}

func (stubRecords) Upsert(ctx context.Context, record *models.MRRRecord) error { return nil }

func (stubRecords) UpsertWithTx(tx *gorm.DB, record *models.MRRRecord) error { return nil }

func TestListByUserFallsBackToUnknownProject(t *testing.T) {
	orphan := uuid.New()
	svc, err := NewService(ServiceParams{
		Repo:          stubRecords{},
		Members:       stubMembers{orphan},
		Projects:      stubProjects{},
		Subscriptions: subscriptions.NewRepository(nil),
	})
	require.NoError(t, err)

	series, err := svc.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Equal(t, orphan, series[0].ProjectID)
	require.Equal(t, "Unknown Project", series[0].ProjectTitle)
	require.Empty(t, series[0].Data)

	dash, err := svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, dash.TotalCurrent.IsZero())
	require.Zero(t, dash.Growth)
}
