package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/mrr"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type subscribedProjects interface {
	ProjectIDsWithSubscriptions(ctx context.Context) ([]uuid.UUID, error)
}

type mrrRecomputer interface {
	RecomputeFromSubscriptions(tx *gorm.DB, projectID uuid.UUID, now time.Time) (*mrr.RecordDTO, error)
}

// MRRSnapshotJobParams wires the monthly revenue snapshot.
type MRRSnapshotJobParams struct {
	Logger        *logger.Logger
	DB            txRunner
	Subscriptions subscribedProjects
	MRR           mrrRecomputer
}

// NewMRRSnapshotJob rebuilds the current month's MRR row for every project
// with Stripe subscriptions, so the month exists even without webhook traffic.
func NewMRRSnapshotJob(params MRRSnapshotJobParams) (Job, error) {
	switch {
	case params.Logger == nil:
		return nil, fmt.Errorf("logger required")
	case params.DB == nil:
		return nil, fmt.Errorf("db runner required")
	case params.Subscriptions == nil:
		return nil, fmt.Errorf("subscription source required")
	case params.MRR == nil:
		return nil, fmt.Errorf("mrr service required")
	}
	return &mrrSnapshotJob{
		logg:          params.Logger,
		db:            params.DB,
		subscriptions: params.Subscriptions,
		mrr:           params.MRR,
		now:           time.Now,
	}, nil
}

type mrrSnapshotJob struct {
	logg          *logger.Logger
	db            txRunner
	subscriptions subscribedProjects
	mrr           mrrRecomputer
	now           func() time.Time
}

func (j *mrrSnapshotJob) Name() string { return "mrr-snapshot" }

func (j *mrrSnapshotJob) Run(ctx context.Context) error {
	projectIDs, err := j.subscriptions.ProjectIDsWithSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("list subscribed projects: %w", err)
	}
	now := j.now().UTC()

	var errs error
	refreshed := 0
	for _, projectID := range projectIDs {
		err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
			_, err := j.mrr.RecomputeFromSubscriptions(tx, projectID, now)
			return err
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("project %s: %w", projectID, err))
			continue
		}
		refreshed++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"month":     mrr.MonthKey(now),
		"projects":  len(projectIDs),
		"refreshed": refreshed,
	})
	j.logg.Info(logCtx, "mrr snapshot complete")
	return errs
}

type roundCloser interface {
	CloseExpired(ctx context.Context) (int64, error)
}

// NewRoundExpiryJob closes open investment rounds past their deadline.
func NewRoundExpiryJob(logg *logger.Logger, rounds roundCloser) (Job, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rounds == nil {
		return nil, fmt.Errorf("round service required")
	}
	return &roundExpiryJob{logg: logg, rounds: rounds}, nil
}

type roundExpiryJob struct {
	logg   *logger.Logger
	rounds roundCloser
}

func (j *roundExpiryJob) Name() string { return "round-expiry" }

func (j *roundExpiryJob) Run(ctx context.Context) error {
	closed, err := j.rounds.CloseExpired(ctx)
	if err != nil {
		return fmt.Errorf("close expired rounds: %w", err)
	}
	j.logg.Info(j.logg.WithField(ctx, "rounds_closed", closed), "round expiry complete")
	return nil
}
