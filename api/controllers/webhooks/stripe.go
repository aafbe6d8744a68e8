package webhooks

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/cofoundr/cofoundr-backend/api/responses"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
	pkgstripe "github.com/cofoundr/cofoundr-backend/pkg/stripe"
	"github.com/stripe/stripe-go/v84"
)

const maxPayloadBytes = 1 << 16

// StripeWebhookService applies a verified Stripe event and reports the outcome label.
type StripeWebhookService interface {
	HandleEvent(ctx context.Context, event *stripe.Event) (string, error)
}

type stripeWebhookGuard interface {
	CheckAndMark(ctx context.Context, eventID string) (bool, error)
	Release(ctx context.Context, eventID string) error
}

type eventVerifier interface {
	VerifyEvent(payload []byte, signature string) (stripe.Event, error)
}

type eventObserver interface {
	Observe(eventType, outcome string)
}

const outcomeDuplicate = "duplicate"

// StripeWebhook handles Stripe subscription lifecycle events.
func StripeWebhook(svc StripeWebhookService, verifier eventVerifier, guard stripeWebhookGuard, observer eventObserver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil || verifier == nil || guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stripe webhook unavailable"))
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeWebhook, err, "read request body"))
			return
		}

		event, err := verifier.VerifyEvent(payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			if errors.Is(err, pkgstripe.ErrMissingSignature) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeWebhook, "stripe signature missing"))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeWebhook, err, "invalid stripe signature"))
			return
		}

		alreadyProcessed, err := guard.CheckAndMark(ctx, event.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
			return
		}
		if alreadyProcessed {
			observe(observer, string(event.Type), outcomeDuplicate)
			responses.WriteSuccess(w, map[string]bool{"received": true})
			return
		}

		outcome, err := svc.HandleEvent(ctx, &event)
		if err != nil {
			if releaseErr := guard.Release(ctx, event.ID); releaseErr != nil && logg != nil {
				logg.Error(ctx, "stripe.webhook.release_failed", releaseErr)
			}
			observe(observer, string(event.Type), "failed")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		observe(observer, string(event.Type), outcome)
		if logg != nil {
			logg.Info(logg.WithFields(ctx, map[string]any{
				"event_id":   event.ID,
				"event_type": string(event.Type),
				"outcome":    outcome,
			}), "stripe.webhook.processed")
		}
		responses.WriteSuccess(w, map[string]bool{"received": true})
	}
}

func observe(observer eventObserver, eventType, outcome string) {
	if observer != nil {
		observer.Observe(eventType, outcome)
	}
}
