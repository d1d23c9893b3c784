package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/repository"
)

type conflictingWebhookRepo struct {
	*repository.MemoryWebhookRepository
}

func (r *conflictingWebhookRepo) Create(_ context.Context, _ *entity.Webhook) error {
	return repository.ErrWebhookAlreadyExists
}

func TestRegisterWebhook(t *testing.T) {
	svc := NewWebhookService(repository.NewMemoryWebhookRepository())
	ctx := context.Background()

	webhook, err := svc.Register(ctx, " https://example.com/hook ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if webhook.ID == 0 || webhook.URL != "https://example.com/hook" {
		t.Fatalf("unexpected webhook %+v", webhook)
	}

	if _, err := svc.Register(ctx, "https://example.com/hook"); !errors.Is(err, ErrWebhookAlreadyExists) {
		t.Fatalf("expected ErrWebhookAlreadyExists, got %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected exactly one subscriber, got %d err=%v", len(all), err)
	}
}

func TestRegisterWebhookMapsStoreConflict(t *testing.T) {
	svc := NewWebhookService(&conflictingWebhookRepo{repository.NewMemoryWebhookRepository()})

	if _, err := svc.Register(context.Background(), "https://example.com/hook"); !errors.Is(err, ErrWebhookAlreadyExists) {
		t.Fatalf("expected ErrWebhookAlreadyExists, got %v", err)
	}
}

func TestRegisterWebhookRejectsBlank(t *testing.T) {
	svc := NewWebhookService(repository.NewMemoryWebhookRepository())

	if _, err := svc.Register(context.Background(), "   "); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestGetWebhook(t *testing.T) {
	svc := NewWebhookService(repository.NewMemoryWebhookRepository())
	ctx := context.Background()

	created, err := svc.Register(ctx, "https://example.com/hook")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	found, err := svc.GetWebhook(ctx, created.ID)
	if err != nil || found.URL != created.URL {
		t.Fatalf("expected webhook, got %+v err=%v", found, err)
	}
	if _, err := svc.GetWebhook(ctx, 404); !errors.Is(err, ErrWebhookNotFound) {
		t.Fatalf("expected ErrWebhookNotFound, got %v", err)
	}
}
