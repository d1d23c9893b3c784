package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObservePaymentCreate(true)
	c.ObservePaymentCreate(false)
	c.ObservePaymentCreate(false)
	c.ObserveDeliveryAttempt("http_error")
	c.ObserveDelivery("exhausted")

	if got := testutil.ToFloat64(c.paymentsCreated.WithLabelValues("existing")); got != 2 {
		t.Fatalf("expected 2 existing results, got %v", got)
	}
	if got := testutil.ToFloat64(c.deliveryAttempts.WithLabelValues("http_error")); got != 1 {
		t.Fatalf("expected 1 http_error attempt, got %v", got)
	}
	if got := testutil.ToFloat64(c.deliveries.WithLabelValues("exhausted")); got != 1 {
		t.Fatalf("expected 1 exhausted delivery, got %v", got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.ObservePaymentCreate(true)
	c.ObserveDeliveryAttempt("success")
	c.ObserveDelivery("succeeded")
}
