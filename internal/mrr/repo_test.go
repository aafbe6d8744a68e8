package mrr

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

func TestRepositoryUpsertKeepsRowPerMonth(t *testing.T) {
	f := newFixture(t)
	repo := NewRepository(f.conn)
	ctx := context.Background()

	first := &models.MRRRecord{ProjectID: f.project.ID, Month: "2025-05", Revenue: decimal.NewFromInt(1000), StripeSubscriptionCount: 1}
	require.NoError(t, repo.Upsert(ctx, first))
	storedID := first.ID
	require.NotEqual(t, uuid.Nil, storedID)

	second := &models.MRRRecord{ProjectID: f.project.ID, Month: "2025-05", Revenue: decimal.NewFromInt(1200), StripeSubscriptionCount: 2}
	require.NoError(t, repo.Upsert(ctx, second))
	require.Equal(t, storedID, second.ID)
	require.True(t, second.Revenue.Equal(decimal.NewFromInt(1200)), "revenue %s", second.Revenue)
	require.Equal(t, 2, second.StripeSubscriptionCount)

	rows, err := repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, storedID, rows[0].ID)
	require.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(1200)))
}

func TestRepositoryUpsertWithTxRepeatsInsideOneTransaction(t *testing.T) {
	f := newFixture(t)
	repo := NewRepository(f.conn)
	ctx := context.Background()

	err := f.conn.Transaction(func(tx *gorm.DB) error {
		for _, revenue := range []int64{300, 450, 600} {
			row := &models.MRRRecord{ProjectID: f.project.ID, Month: "2025-07", Revenue: decimal.NewFromInt(revenue)}
			if err := repo.UpsertWithTx(tx, row); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	rows, err := repo.ListByProjects(ctx, []uuid.UUID{f.project.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(600)))

	require.ErrorIs(t, repo.UpsertWithTx(nil, &models.MRRRecord{}), gorm.ErrInvalidTransaction)
}

func TestRepositoryListByProjectsOrdersByMonth(t *testing.T) {
	f := newFixture(t)
	repo := NewRepository(f.conn)
	ctx := context.Background()

	other := &models.Project{OwnerID: f.owner.ID, Title: "Ledger", Description: "Bookkeeping", Category: "fintech"}
	require.NoError(t, f.conn.Omit("Owner").Create(other).Error)

	for _, row := range []*models.MRRRecord{
		{ProjectID: f.project.ID, Month: "2025-06", Revenue: decimal.NewFromInt(20)},
		{ProjectID: other.ID, Month: "2025-04", Revenue: decimal.NewFromInt(5)},
		{ProjectID: f.project.ID, Month: "2025-05", Revenue: decimal.NewFromInt(10)},
	} {
		require.NoError(t, repo.Upsert(ctx, row))
	}

	rows, err := repo.ListByProjects(ctx, []uuid.UUID{f.project.ID, other.ID})
	require.NoError(t, err)
	months := make([]string, 0, len(rows))
	for _, row := range rows {
		months = append(months, row.Month)
	}
	require.Equal(t, []string{"2025-04", "2025-05", "2025-06"}, months)

	empty, err := repo.ListByProjects(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}
