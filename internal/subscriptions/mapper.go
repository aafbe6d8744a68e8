package subscriptions

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

// BuildFromStripe maps a Stripe subscription into the local mirror row. The
// billed amount and period come from the first subscription item.
func BuildFromStripe(sub *stripe.Subscription, projectID uuid.UUID) (*models.StripeSubscription, error) {
	if sub == nil {
		return nil, pkgerrors.New(pkgerrors.CodeWebhook, "stripe subscription is nil")
	}
	if strings.TrimSpace(sub.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeWebhook, "stripe subscription id missing")
	}

	row := &models.StripeSubscription{
		ProjectID:            projectID,
		StripeSubscriptionID: sub.ID,
		Status:               mapStripeStatus(sub.Status),
		Currency:             "usd",
	}
	if sub.Customer != nil {
		row.StripeCustomerID = sub.Customer.ID
	}
	if item := firstItem(sub); item != nil {
		if item.Price != nil {
			row.AmountCents = item.Price.UnitAmount
			if currency := strings.TrimSpace(string(item.Price.Currency)); currency != "" {
				row.Currency = currency
			}
		}
		row.CurrentPeriodStart = toTimePtr(item.CurrentPeriodStart)
		row.CurrentPeriodEnd = toTimePtr(item.CurrentPeriodEnd)
	}
	return row, nil
}

// ProjectIDFromMetadata extracts the project id attached to subscription
// metadata. ok is false when the key is absent or blank.
func ProjectIDFromMetadata(metadata map[string]string) (id uuid.UUID, ok bool, err error) {
	raw := strings.TrimSpace(metadata["project_id"])
	if raw == "" {
		return uuid.Nil, false, nil
	}
	id, err = uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeWebhook, err, "invalid project_id metadata")
	}
	return id, true, nil
}

func firstItem(sub *stripe.Subscription) *stripe.SubscriptionItem {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return nil
	}
	return sub.Items.Data[0]
}

func toTimePtr(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

func mapStripeStatus(status stripe.SubscriptionStatus) enums.SubscriptionStatus {
	parsed, err := enums.ParseSubscriptionStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if err != nil {
		return enums.SubscriptionStatusIncomplete
	}
	return parsed
}
