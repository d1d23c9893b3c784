package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/factory"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/mapper"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/metrics"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/worker"
	"github.com/vibast-solutions/ms-go-payment-notifier/config"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxAttempts           = 3
	defaultInitialBackoff        = 200 * time.Millisecond
	defaultMaxBackoff            = 2 * time.Second
	defaultConnectTimeout        = 2 * time.Second
	defaultReadTimeout           = 3 * time.Second
	defaultMaxParallelDeliveries = 8

	maxDrainedResponseBytes = 64 << 10
)

type webhookLister interface {
	ListAll(ctx context.Context) ([]*entity.Webhook, error)
}

type taskRunner interface {
	Submit(name string, task worker.Task) bool
}

// Notifier posts the payment summary to every registered webhook. Each
// subscriber is delivered independently with bounded retries; nothing
// about a delivery is reported back to the caller.
type Notifier struct {
	webhooks webhookLister
	runner   taskRunner
	client   *http.Client
	cfg      config.NotifierConfig
	metrics  *metrics.Collector
	logger   logrus.FieldLogger
}

func NewNotifier(webhooks webhookLister, runner taskRunner, cfg config.NotifierConfig, collector *metrics.Collector) *Notifier {
	cfg = normalizeNotifierConfig(cfg)

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Notifier{
		webhooks: webhooks,
		runner:   runner,
		client:   &http.Client{Transport: transport},
		cfg:      cfg,
		metrics:  collector,
		logger:   factory.NewModuleLogger("webhook-notifier"),
	}
}

func normalizeNotifierConfig(cfg config.NotifierConfig) config.NotifierConfig {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = defaultMaxBackoff
		if cfg.MaxBackoff < cfg.InitialBackoff {
			cfg.MaxBackoff = cfg.InitialBackoff
		}
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.MaxParallelDeliveries <= 0 {
		cfg.MaxParallelDeliveries = defaultMaxParallelDeliveries
	}
	return cfg
}

// NotifyAll schedules delivery of payment to all subscribers and returns
// immediately.
func (n *Notifier) NotifyAll(payment *entity.Payment) {
	if payment == nil {
		n.logger.Warn("Skipping webhook notification for nil payment")
		return
	}

	snapshot := *payment
	dispatchID := uuid.NewString()
	submitted := n.runner.Submit("notify_webhooks", func(ctx context.Context) {
		n.deliverAll(ctx, dispatchID, &snapshot)
	})
	if !submitted {
		n.logger.WithFields(logrus.Fields{
			"transaction_id": snapshot.TransactionID,
			"order_number":   snapshot.OrderNumber,
		}).Warn("Webhook notification dropped, worker pool is closed")
	}
}

func (n *Notifier) deliverAll(ctx context.Context, dispatchID string, payment *entity.Payment) []deliveryResult {
	logger := n.logger.WithFields(logrus.Fields{
		"dispatch_id":    dispatchID,
		"transaction_id": payment.TransactionID,
		"order_number":   payment.OrderNumber,
	})

	hooks, err := n.webhooks.ListAll(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to load webhook subscribers")
		return nil
	}
	if len(hooks) == 0 {
		logger.Info("No webhooks registered, skipping notification")
		return nil
	}

	body, err := json.Marshal(mapper.PaymentToResponse(payment))
	if err != nil {
		logger.WithError(err).Error("Failed to encode webhook payload")
		return nil
	}

	results := make([]deliveryResult, len(hooks))
	var g errgroup.Group
	g.SetLimit(n.cfg.MaxParallelDeliveries)
	for i, hook := range hooks {
		i := i
		url := hook.URL
		g.Go(func() error {
			results[i] = n.deliverIsolated(ctx, url, body, logger.WithField("url", url))
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// deliverIsolated keeps a panic in one subscriber's delivery from reaching
// the other subscribers or the pool.
func (n *Notifier) deliverIsolated(ctx context.Context, url string, body []byte, logger logrus.FieldLogger) (result deliveryResult) {
	d := n.newDelivery(url, body)
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Webhook delivery panicked")
			d.state = deliveryExhausted
			d.lastErr = fmt.Errorf("delivery panicked: %v", r)
			result = d.result()
		}
		n.metrics.ObserveDelivery(result.State.String())
	}()

	result = n.run(ctx, d, logger)
	return result
}

// post performs one delivery attempt. The attempt, body read included, is
// bounded by the connect and read timeouts together.
func (n *Notifier) post(ctx context.Context, url string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.ConnectTimeout+n.cfg.ReadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainedResponseBytes)); err != nil {
		return fmt.Errorf("read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &unexpectedStatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

type unexpectedStatusError struct {
	StatusCode int
}

func (e *unexpectedStatusError) Error() string {
	return fmt.Sprintf("webhook endpoint returned status=%d", e.StatusCode)
}
