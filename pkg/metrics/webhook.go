package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics counts processed webhook events by type and outcome.
type WebhookMetrics struct {
	events *prometheus.CounterVec
}

// NewStripeWebhookMetrics registers stripe_webhook_events_total.
func NewStripeWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	if reg == nil {
		return &WebhookMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stripe_webhook_events_total",
		Help: "Stripe webhook events by type and outcome.",
	}, []string{"type", "outcome"})
	reg.MustRegister(events)
	return &WebhookMetrics{events: events}
}

// Observe increments the counter for the event type and outcome.
func (w *WebhookMetrics) Observe(eventType, outcome string) {
	if w == nil || w.events == nil {
		return
	}
	w.events.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}
