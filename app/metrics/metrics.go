package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payment_notifier"

// Collector groups the service counters. A nil *Collector is valid and
// records nothing.
type Collector struct {
	paymentsCreated  *prometheus.CounterVec
	deliveryAttempts *prometheus.CounterVec
	deliveries       *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		paymentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_create_requests_total",
			Help:      "Payment create requests by result (created or existing).",
		}, []string{"result"}),
		deliveryAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_delivery_attempts_total",
			Help:      "Webhook HTTP attempts by outcome.",
		}, []string{"outcome"}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Per-subscriber webhook deliveries by final state.",
		}, []string{"state"}),
	}
}

func (c *Collector) ObservePaymentCreate(created bool) {
	if c == nil {
		return
	}
	result := "existing"
	if created {
		result = "created"
	}
	c.paymentsCreated.WithLabelValues(result).Inc()
}

func (c *Collector) ObserveDeliveryAttempt(outcome string) {
	if c == nil {
		return
	}
	c.deliveryAttempts.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveDelivery(state string) {
	if c == nil {
		return
	}
	c.deliveries.WithLabelValues(state).Inc()
}
