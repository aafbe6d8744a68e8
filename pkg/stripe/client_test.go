package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cofoundr/cofoundr-backend/pkg/config"
)

func TestNewClientValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := NewClient(ctx, config.StripeConfig{}, nil); !errors.Is(err, errSecretRequired) {
		t.Fatalf("expected missing secret error, got %v", err)
	}
	if _, err := NewClient(ctx, config.StripeConfig{Secret: "whsec_x", Env: "staging"}, nil); !errors.Is(err, errInvalidStripeEnv) {
		t.Fatalf("expected invalid env error, got %v", err)
	}
	if _, err := NewClient(ctx, config.StripeConfig{Secret: "whsec_x", APIKey: "sk_live_123", Env: "test"}, nil); err == nil {
		t.Fatal("expected live key to be rejected in test env")
	}

	client, err := NewClient(ctx, config.StripeConfig{Secret: "whsec_x"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Environment() != testEnv {
		t.Fatalf("expected test env, got %q", client.Environment())
	}
	if client.API() != nil {
		t.Fatal("expected no api client without a key")
	}
}

func TestVerifyEvent(t *testing.T) {
	client := &Client{environment: testEnv, signingSecret: "whsec_test"}
	payload := []byte(`{"id":"evt_1","object":"event","type":"customer.subscription.updated","data":{"object":{}}}`)

	header := signatureHeader(payload, "whsec_test", time.Now().Unix())

	event, err := client.VerifyEvent(payload, header)
	if err != nil {
		t.Fatalf("verify event: %v", err)
	}
	if event.ID != "evt_1" || event.Type != "customer.subscription.updated" {
		t.Fatalf("unexpected event %s/%s", event.ID, event.Type)
	}

	if _, err := client.VerifyEvent(payload, ""); !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected missing signature error, got %v", err)
	}
	if _, err := client.VerifyEvent(payload, "t=1,v1=deadbeef"); err == nil {
		t.Fatal("expected bad signature to fail")
	}
}

func signatureHeader(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
