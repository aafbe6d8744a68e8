package subscriptions

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

func TestBuildFromStripe(t *testing.T) {
	projectID := uuid.New()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sub := &stripe.Subscription{
		ID:       "sub_123",
		Status:   stripe.SubscriptionStatusActive,
		Customer: &stripe.Customer{ID: "cus_9"},
		Items: &stripe.SubscriptionItemList{Data: []*stripe.SubscriptionItem{{
			Price:              &stripe.Price{UnitAmount: 4900, Currency: stripe.CurrencyEUR},
			CurrentPeriodStart: start.Unix(),
			CurrentPeriodEnd:   start.AddDate(0, 1, 0).Unix(),
		}}},
	}

	row, err := BuildFromStripe(sub, projectID)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if row.ProjectID != projectID || row.StripeSubscriptionID != "sub_123" || row.StripeCustomerID != "cus_9" {
		t.Fatalf("unexpected identifiers %+v", row)
	}
	if row.AmountCents != 4900 || row.Currency != "eur" {
		t.Fatalf("unexpected amount %d %s", row.AmountCents, row.Currency)
	}
	if row.Status != enums.SubscriptionStatusActive {
		t.Fatalf("expected active, got %s", row.Status)
	}
	if row.CurrentPeriodStart == nil || !row.CurrentPeriodStart.Equal(start) {
		t.Fatalf("unexpected period start %v", row.CurrentPeriodStart)
	}
}

func TestBuildFromStripeWithoutItems(t *testing.T) {
	row, err := BuildFromStripe(&stripe.Subscription{ID: "sub_1", Status: "mystery"}, uuid.New())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if row.AmountCents != 0 || row.Currency != "usd" || row.CurrentPeriodEnd != nil {
		t.Fatalf("expected zero-value billing, got %+v", row)
	}
	if row.Status != enums.SubscriptionStatusIncomplete {
		t.Fatalf("expected unknown status to map to incomplete, got %s", row.Status)
	}
	if _, err := BuildFromStripe(&stripe.Subscription{}, uuid.New()); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestProjectIDFromMetadata(t *testing.T) {
	id := uuid.New()
	got, ok, err := ProjectIDFromMetadata(map[string]string{"project_id": " " + id.String() + " "})
	if err != nil || !ok || got != id {
		t.Fatalf("expected %s, got %s ok=%v err=%v", id, got, ok, err)
	}
	if _, ok, err := ProjectIDFromMetadata(nil); ok || err != nil {
		t.Fatalf("expected absent metadata to be ok=false without error, got ok=%v err=%v", ok, err)
	}
	if _, _, err := ProjectIDFromMetadata(map[string]string{"project_id": "nope"}); err == nil {
		t.Fatal("expected parse error")
	}
}
