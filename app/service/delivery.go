package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/sirupsen/logrus"
)

type deliveryState int

const (
	deliveryAttempting deliveryState = iota
	deliverySucceeded
	deliveryExhausted
	deliveryAbandoned
)

func (s deliveryState) String() string {
	switch s {
	case deliveryAttempting:
		return "attempting"
	case deliverySucceeded:
		return "succeeded"
	case deliveryExhausted:
		return "exhausted"
	case deliveryAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

const (
	attemptOutcomeSuccess   = "success"
	attemptOutcomeHTTPError = "http_error"
	attemptOutcomeTransport = "transport_error"
)

type deliveryResult struct {
	URL      string
	State    deliveryState
	Attempts int
	Err      error
}

// delivery tracks one subscriber. It starts in Attempting(1) and moves to
// Succeeded, Exhausted or Abandoned; the backoff is only consulted between
// two attempts.
type delivery struct {
	url         string
	body        []byte
	maxAttempts int
	attempt     int
	state       deliveryState
	backoff     backoff.BackOff
	lastErr     error
}

func (n *Notifier) newDelivery(url string, body []byte) *delivery {
	schedule := backoff.NewExponentialBackOff()
	schedule.InitialInterval = n.cfg.InitialBackoff
	schedule.MaxInterval = n.cfg.MaxBackoff
	schedule.Multiplier = 2
	schedule.RandomizationFactor = 0
	schedule.MaxElapsedTime = 0
	schedule.Reset()

	return &delivery{
		url:         url,
		body:        body,
		maxAttempts: n.cfg.MaxAttempts,
		attempt:     1,
		state:       deliveryAttempting,
		backoff:     schedule,
	}
}

func (d *delivery) result() deliveryResult {
	return deliveryResult{
		URL:      d.url,
		State:    d.state,
		Attempts: d.attempt,
		Err:      d.lastErr,
	}
}

func (n *Notifier) run(ctx context.Context, d *delivery, logger logrus.FieldLogger) deliveryResult {
	for d.state == deliveryAttempting {
		n.step(ctx, d, logger)
	}

	entry := logger.WithFields(logrus.Fields{
		"attempts": d.attempt,
		"state":    d.state.String(),
	})
	switch d.state {
	case deliverySucceeded:
		entry.Info("Webhook delivered")
	case deliveryExhausted:
		entry.WithError(d.lastErr).Error("Webhook delivery failed after max attempts")
	case deliveryAbandoned:
		entry.WithError(d.lastErr).Warn("Webhook delivery abandoned")
	}

	return d.result()
}

func (n *Notifier) step(ctx context.Context, d *delivery, logger logrus.FieldLogger) {
	logger.WithField("attempt", d.attempt).Debugf("Webhook call attempt %d/%d", d.attempt, d.maxAttempts)

	err := n.post(ctx, d.url, d.body)
	if err == nil {
		n.metrics.ObserveDeliveryAttempt(attemptOutcomeSuccess)
		d.state = deliverySucceeded
		d.lastErr = nil
		return
	}

	d.lastErr = err
	var statusErr *unexpectedStatusError
	if errors.As(err, &statusErr) {
		n.metrics.ObserveDeliveryAttempt(attemptOutcomeHTTPError)
	} else {
		n.metrics.ObserveDeliveryAttempt(attemptOutcomeTransport)
	}
	logger.WithField("attempt", d.attempt).WithError(err).Warn("Webhook call attempt failed")

	if d.attempt >= d.maxAttempts {
		d.state = deliveryExhausted
		return
	}

	wait := d.backoff.NextBackOff()
	if wait == backoff.Stop {
		d.state = deliveryExhausted
		return
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.state = deliveryAbandoned
		d.lastErr = ctx.Err()
	case <-timer.C:
		d.attempt++
	}
}
