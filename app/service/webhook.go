package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/repository"
)

type webhookRepository interface {
	Create(ctx context.Context, webhook *entity.Webhook) error
	FindByID(ctx context.Context, id uint64) (*entity.Webhook, error)
	FindByURL(ctx context.Context, url string) (*entity.Webhook, error)
	List(ctx context.Context) ([]*entity.Webhook, error)
}

type WebhookService struct {
	webhookRepo webhookRepository
}

func NewWebhookService(webhookRepo webhookRepository) *WebhookService {
	return &WebhookService{webhookRepo: webhookRepo}
}

func (s *WebhookService) Register(ctx context.Context, url string) (*entity.Webhook, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrInvalidRequest
	}

	existing, err := s.webhookRepo.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrWebhookAlreadyExists
	}

	webhook := &entity.Webhook{
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.webhookRepo.Create(ctx, webhook); err != nil {
		if errors.Is(err, repository.ErrWebhookAlreadyExists) {
			return nil, ErrWebhookAlreadyExists
		}
		return nil, err
	}

	return webhook, nil
}

func (s *WebhookService) GetWebhook(ctx context.Context, id uint64) (*entity.Webhook, error) {
	webhook, err := s.webhookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if webhook == nil {
		return nil, ErrWebhookNotFound
	}
	return webhook, nil
}

// ListAll returns a snapshot of every registered subscriber.
func (s *WebhookService) ListAll(ctx context.Context) ([]*entity.Webhook, error) {
	return s.webhookRepo.List(ctx)
}
