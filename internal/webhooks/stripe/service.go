package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/mrr"
	"github.com/cofoundr/cofoundr-backend/internal/subscriptions"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

// Outcomes reported per handled event.
const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
)

type subscriptionRepository interface {
	FindByStripeIDWithTx(tx *gorm.DB, stripeID string) (*models.StripeSubscription, error)
	UpsertWithTx(tx *gorm.DB, row *models.StripeSubscription) error
	MarkCanceledWithTx(tx *gorm.DB, stripeID string) (uuid.UUID, error)
}

type mrrRecomputer interface {
	RecomputeFromSubscriptions(tx *gorm.DB, projectID uuid.UUID, now time.Time) (*mrr.RecordDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams wires the Stripe webhook service.
type ServiceParams struct {
	Subscriptions     subscriptionRepository
	MRR               mrrRecomputer
	TransactionRunner txRunner
	Logger            *logger.Logger
	Now               func() time.Time
}

// Service applies Stripe subscription lifecycle events to the subscription
// mirror and the current month's MRR.
type Service struct {
	subscriptions subscriptionRepository
	mrr           mrrRecomputer
	txRunner      txRunner
	logg          *logger.Logger
	now           func() time.Time
}

// NewService validates dependencies and builds the service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Subscriptions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "subscription repo required")
	}
	if params.MRR == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mrr service required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		subscriptions: params.Subscriptions,
		mrr:           params.MRR,
		txRunner:      params.TransactionRunner,
		logg:          params.Logger,
		now:           now,
	}, nil
}

// HandleEvent dispatches on the event type and returns the outcome label.
// Unhandled types are ignored.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) (string, error) {
	if event == nil || event.Data == nil {
		return "", pkgerrors.New(pkgerrors.CodeWebhook, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCustomerSubscriptionCreated, stripe.EventTypeCustomerSubscriptionUpdated:
		sub, err := decodeSubscription(event)
		if err != nil {
			return "", err
		}
		return s.syncSubscription(ctx, sub)
	case stripe.EventTypeCustomerSubscriptionDeleted:
		sub, err := decodeSubscription(event)
		if err != nil {
			return "", err
		}
		return s.cancelSubscription(ctx, sub)
	default:
		s.info(ctx, "unhandled stripe event type "+string(event.Type))
		return OutcomeIgnored, nil
	}
}

func (s *Service) syncSubscription(ctx context.Context, sub *stripe.Subscription) (string, error) {
	outcome := OutcomeProcessed
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		projectID, ok, err := s.resolveProject(ctx, tx, sub)
		if err != nil {
			return err
		}
		if !ok {
			s.warn(ctx, "stripe subscription "+sub.ID+" has no project_id metadata")
			outcome = OutcomeIgnored
			return nil
		}

		row, err := subscriptions.BuildFromStripe(sub, projectID)
		if err != nil {
			return err
		}
		if err := s.subscriptions.UpsertWithTx(tx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert subscription")
		}
		return s.recompute(tx, projectID)
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (s *Service) cancelSubscription(ctx context.Context, sub *stripe.Subscription) (string, error) {
	outcome := OutcomeProcessed
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		storedProject, err := s.subscriptions.MarkCanceledWithTx(tx, sub.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel subscription")
		}

		projectID, ok, metaErr := subscriptions.ProjectIDFromMetadata(sub.Metadata)
		if metaErr != nil || !ok {
			projectID, ok = storedProject, storedProject != uuid.Nil
		}
		if !ok {
			s.warn(ctx, "canceled stripe subscription "+sub.ID+" matches no project")
			outcome = OutcomeIgnored
			return nil
		}
		return s.recompute(tx, projectID)
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// resolveProject prefers the metadata project and falls back to the stored row.
func (s *Service) resolveProject(ctx context.Context, tx *gorm.DB, sub *stripe.Subscription) (uuid.UUID, bool, error) {
	projectID, ok, err := subscriptions.ProjectIDFromMetadata(sub.Metadata)
	if err == nil && ok {
		return projectID, true, nil
	}
	if err != nil {
		s.warn(ctx, err.Error())
	}
	stored, findErr := s.subscriptions.FindByStripeIDWithTx(tx, sub.ID)
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load subscription")
	}
	return stored.ProjectID, true, nil
}

func (s *Service) recompute(tx *gorm.DB, projectID uuid.UUID) error {
	if _, err := s.mrr.RecomputeFromSubscriptions(tx, projectID, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute mrr")
	}
	return nil
}

func decodeSubscription(event *stripe.Event) (*stripe.Subscription, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeWebhook, err, "decode subscription event")
	}
	if sub.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeWebhook, "subscription id missing")
	}
	return &sub, nil
}

func (s *Service) info(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Info(ctx, msg)
	}
}

func (s *Service) warn(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg)
	}
}
