package rounds

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/dbtest"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	conn    *gorm.DB
	repo    *Repository
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

	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Projects: projects.NewRepository(conn),
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return &fixture{conn: conn, repo: repo, svc: svc, owner: owner, project: project}
}

func seedInput(projectID uuid.UUID) CreateRoundInput {
	return CreateRoundInput{
		ProjectID:     projectID,
		RoundName:     "Seed",
		AmountSeeking: decimal.NewFromInt(100_000),
		Valuation:     decimal.NewFromInt(1_000_000),
		EquityOffered: decimal.NewFromInt(10),
		MinInvestment: decimal.NewFromInt(1_000),
		MaxInvestment: decimal.NewFromInt(25_000),
		Deadline:      fixedNow.Add(36 * time.Hour),
	}
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestCreateRoundDerivesProgress(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.Create(context.Background(), f.owner.ID, seedInput(f.project.ID))
	require.NoError(t, err)
	require.Equal(t, enums.RoundStatusOpen, dto.Status)
	require.True(t, dto.AmountRaised.IsZero())
	require.Equal(t, 2, dto.DaysLeft)
	require.Equal(t, "2 days left", dto.DeadlineLabel)
	require.NotNil(t, dto.Project)
	require.Equal(t, "Solar", dto.Project.Title)
}

func TestCreateRoundRequiresOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), seedInput(f.project.ID))
	requireCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateRoundValidatesBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		mut   func(*CreateRoundInput)
		field string
	}{
		{"zero seeking", func(in *CreateRoundInput) { in.AmountSeeking = decimal.Zero }, "amount_seeking"},
		{"min above max", func(in *CreateRoundInput) { in.MinInvestment = decimal.NewFromInt(30_000) }, "max_investment"},
		{"max above seeking", func(in *CreateRoundInput) { in.MaxInvestment = decimal.NewFromInt(200_000) }, "max_investment"},
		{"past deadline", func(in *CreateRoundInput) { in.Deadline = fixedNow.Add(-time.Hour) }, "deadline"},
		{"equity over 100", func(in *CreateRoundInput) { in.EquityOffered = decimal.NewFromInt(101) }, "equity_offered"},
		{"zero min", func(in *CreateRoundInput) { in.MinInvestment = decimal.Zero }, "min_investment"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := seedInput(f.project.ID)
			tc.mut(&input)
			_, err := f.svc.Create(ctx, f.owner.ID, input)
			requireCode(t, err, pkgerrors.CodeValidation)
			details, ok := pkgerrors.As(err).Details().(map[string]string)
			require.True(t, ok)
			require.Contains(t, details, tc.field)
		})
	}
}

func TestUpdateRoundRechecksMergedBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	round, err := f.svc.Create(ctx, f.owner.ID, seedInput(f.project.ID))
	require.NoError(t, err)

	tooSmall := decimal.NewFromInt(10_000)
	_, err = f.svc.Update(ctx, f.owner.ID, round.ID, UpdateRoundInput{AmountSeeking: &tooSmall})
	requireCode(t, err, pkgerrors.CodeValidation)

	closed := enums.RoundStatusClosed
	updated, err := f.svc.Update(ctx, f.owner.ID, round.ID, UpdateRoundInput{Status: &closed})
	require.NoError(t, err)
	require.Equal(t, enums.RoundStatusClosed, updated.Status)

	_, err = f.svc.Update(ctx, uuid.New(), round.ID, UpdateRoundInput{Status: &closed})
	requireCode(t, err, pkgerrors.CodeForbidden)
}

func TestListOpenFiltersByCategoryAndAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &models.Project{OwnerID: f.owner.ID, Title: "Ledger", Description: "Bookkeeping for shops", Category: "fintech"}
	require.NoError(t, f.conn.Omit("Owner").Create(other).Error)

	small, err := f.svc.Create(ctx, f.owner.ID, seedInput(f.project.ID))
	require.NoError(t, err)

	big := seedInput(f.project.ID)
	big.RoundName = "Series A"
	big.AmountSeeking = decimal.NewFromInt(2_000_000)
	_, err = f.svc.Create(ctx, f.owner.ID, big)
	require.NoError(t, err)

	fintech, err := f.svc.Create(ctx, f.owner.ID, seedInput(other.ID))
	require.NoError(t, err)

	ceiling := decimal.NewFromInt(500_000)
	rows, err := f.svc.ListOpen(ctx, OpenFilter{Category: "energy", MaxAmount: &ceiling})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, small.ID, rows[0].ID)

	rows, err = f.svc.ListOpen(ctx, OpenFilter{Category: "fintech"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, fintech.ID, rows[0].ID)

	floor := decimal.NewFromInt(1_000_000)
	_, err = f.svc.ListOpen(ctx, OpenFilter{MinAmount: &floor, MaxAmount: &ceiling})
	requireCode(t, err, pkgerrors.CodeValidation)

	all, err := f.svc.List(ctx, &f.project.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestCloseExpiredClosesPastDeadlines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	live, err := f.svc.Create(ctx, f.owner.ID, seedInput(f.project.ID))
	require.NoError(t, err)

	expired := &models.InvestmentRound{
		ProjectID:     f.project.ID,
		RoundName:     "Bridge",
		AmountSeeking: decimal.NewFromInt(50_000),
		EquityOffered: decimal.NewFromInt(5),
		MinInvestment: decimal.NewFromInt(1_000),
		MaxInvestment: decimal.NewFromInt(5_000),
		Status:        enums.RoundStatusOpen,
		Deadline:      fixedNow.Add(-48 * time.Hour),
	}
	require.NoError(t, f.repo.Create(ctx, expired))

	n, err := f.svc.CloseExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := f.svc.Get(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, enums.RoundStatusClosed, got.Status)
	require.Equal(t, "Expired", got.DeadlineLabel)

	stillOpen, err := f.svc.Get(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, enums.RoundStatusOpen, stillOpen.Status)
}

func TestGetMissingRound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), uuid.New())
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddRaisedWithTx(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	round, err := f.svc.Create(ctx, f.owner.ID, seedInput(f.project.ID))
	require.NoError(t, err)

	require.NoError(t, f.conn.Transaction(func(tx *gorm.DB) error {
		return f.repo.AddRaisedWithTx(tx, round.ID, decimal.NewFromInt(2_500))
	}))
	require.ErrorIs(t, f.repo.AddRaisedWithTx(nil, round.ID, decimal.NewFromInt(1)), gorm.ErrInvalidTransaction)

	got, err := f.svc.Get(ctx, round.ID)
	require.NoError(t, err)
	require.True(t, got.AmountRaised.Equal(decimal.NewFromInt(2_500)), "raised %s", got.AmountRaised)
	require.Equal(t, 2.5, got.Progress)
}

func TestUpdateRoundCannotReopenPastDeadline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expired := &models.InvestmentRound{
		ProjectID:     f.project.ID,
		RoundName:     "Bridge",
		AmountSeeking: decimal.NewFromInt(50_000),
		EquityOffered: decimal.NewFromInt(5),
		MinInvestment: decimal.NewFromInt(1_000),
		MaxInvestment: decimal.NewFromInt(5_000),
		Status:        enums.RoundStatusClosed,
		Deadline:      fixedNow.Add(-24 * time.Hour),
	}
	require.NoError(t, f.repo.Create(ctx, expired))

	open := enums.RoundStatusOpen
	_, err := f.svc.Update(ctx, f.owner.ID, expired.ID, UpdateRoundInput{Status: &open})
	requireCode(t, err, pkgerrors.CodeValidation)
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	require.Contains(t, details, "deadline")

	later := fixedNow.Add(48 * time.Hour)
	reopened, err := f.svc.Update(ctx, f.owner.ID, expired.ID, UpdateRoundInput{Status: &open, Deadline: &later})
	require.NoError(t, err)
	require.Equal(t, enums.RoundStatusOpen, reopened.Status)

	// editing an expired round without reopening it skips the deadline check
	closedRound := seedRound(t, f, f.project.ID, 40_000)
	require.NoError(t, f.conn.Model(&models.InvestmentRound{}).Where("id = ?", closedRound.ID).
		Updates(map[string]any{"status": enums.RoundStatusClosed, "deadline": fixedNow.Add(-time.Hour)}).Error)
	terms := "final"
	_, err = f.svc.Update(ctx, f.owner.ID, closedRound.ID, UpdateRoundInput{Terms: &terms})
	require.NoError(t, err)
}
