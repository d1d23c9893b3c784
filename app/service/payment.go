package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/factory"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/metrics"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/repository"
)

type createPaymentRequest interface {
	GetOrderNumber() string
	GetFirstName() string
	GetLastName() string
	GetZipCode() string
	GetCardNumber() string
}

type paymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByTransactionID(ctx context.Context, id uint64) (*entity.Payment, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Payment, error)
}

type cardEncryptor interface {
	Encrypt(plaintext string) (string, error)
}

type paymentNotifier interface {
	NotifyAll(payment *entity.Payment)
}

type PaymentService struct {
	paymentRepo paymentRepository
	encryptor   cardEncryptor
	notifier    paymentNotifier
	metrics     *metrics.Collector
	logger      logrus.FieldLogger
}

func NewPaymentService(
	paymentRepo paymentRepository,
	encryptor cardEncryptor,
	notifier paymentNotifier,
	collector *metrics.Collector,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		encryptor:   encryptor,
		notifier:    notifier,
		metrics:     collector,
		logger:      factory.NewModuleLogger("payment-service"),
	}
}

// CreateOrGetPayment returns the payment stored under the request's order
// number, creating it when absent. created is true only for the call that
// inserted the record, and only that call notifies subscribers.
func (s *PaymentService) CreateOrGetPayment(ctx context.Context, req createPaymentRequest) (*entity.Payment, bool, error) {
	orderNumber := strings.TrimSpace(req.GetOrderNumber())
	if orderNumber == "" {
		return nil, false, ErrInvalidRequest
	}

	existing, err := s.paymentRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		s.logger.WithField("order_number", orderNumber).Debug("Payment already exists, returning stored record")
		s.metrics.ObservePaymentCreate(false)
		return existing, false, nil
	}

	encrypted, err := s.encryptor.Encrypt(req.GetCardNumber())
	if err != nil {
		return nil, false, fmt.Errorf("encrypt card number: %w", err)
	}

	payment := &entity.Payment{
		OrderNumber:         orderNumber,
		FirstName:           strings.TrimSpace(req.GetFirstName()),
		LastName:            strings.TrimSpace(req.GetLastName()),
		ZipCode:             req.GetZipCode(),
		EncryptedCardNumber: encrypted,
		Status:              entity.PaymentStatusPending,
		CreatedAt:           time.Now().UTC(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrPaymentAlreadyExists) {
			return s.reconcileConcurrentCreate(ctx, orderNumber)
		}
		return nil, false, err
	}

	s.metrics.ObservePaymentCreate(true)
	s.notifier.NotifyAll(payment)

	return payment, true, nil
}

// reconcileConcurrentCreate resolves a lost insert race by returning the
// winner's record.
func (s *PaymentService) reconcileConcurrentCreate(ctx context.Context, orderNumber string) (*entity.Payment, bool, error) {
	existing, err := s.paymentRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("payment %q reported as duplicate but not found", orderNumber)
	}

	s.logger.WithField("order_number", orderNumber).Info("Concurrent create lost the insert race, returning stored record")
	s.metrics.ObservePaymentCreate(false)
	return existing, false, nil
}

func (s *PaymentService) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Payment, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, ErrInvalidRequest
	}

	payment, err := s.paymentRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentService) GetByTransactionID(ctx context.Context, id uint64) (*entity.Payment, error) {
	payment, err := s.paymentRepo.FindByTransactionID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}
