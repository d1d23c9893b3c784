package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
)

// MemoryPaymentRepository keeps payments in process memory. The order
// number index gives it the same uniqueness semantics as the MySQL table.
type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[uint64]*entity.Payment
	orders   map[string]uint64
	nextID   uint64
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments: make(map[uint64]*entity.Payment),
		orders:   make(map[string]uint64),
		nextID:   1,
	}
}

func (r *MemoryPaymentRepository) Create(_ context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[payment.OrderNumber]; exists {
		return ErrPaymentAlreadyExists
	}

	id := r.nextID
	r.nextID++
	copyItem := *payment
	copyItem.TransactionID = id
	r.payments[id] = &copyItem
	r.orders[payment.OrderNumber] = id
	payment.TransactionID = id
	return nil
}

func (r *MemoryPaymentRepository) FindByTransactionID(_ context.Context, id uint64) (*entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

func (r *MemoryPaymentRepository) FindByOrderNumber(_ context.Context, orderNumber string) (*entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.orders[orderNumber]
	if !ok {
		return nil, nil
	}
	copyItem := *r.payments[id]
	return &copyItem, nil
}

type MemoryWebhookRepository struct {
	mu       sync.RWMutex
	webhooks map[uint64]*entity.Webhook
	urls     map[string]uint64
	nextID   uint64
}

func NewMemoryWebhookRepository() *MemoryWebhookRepository {
	return &MemoryWebhookRepository{
		webhooks: make(map[uint64]*entity.Webhook),
		urls:     make(map[string]uint64),
		nextID:   1,
	}
}

func (r *MemoryWebhookRepository) Create(_ context.Context, webhook *entity.Webhook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.urls[webhook.URL]; exists {
		return ErrWebhookAlreadyExists
	}

	id := r.nextID
	r.nextID++
	copyItem := *webhook
	copyItem.ID = id
	r.webhooks[id] = &copyItem
	r.urls[webhook.URL] = id
	webhook.ID = id
	return nil
}

func (r *MemoryWebhookRepository) FindByID(_ context.Context, id uint64) (*entity.Webhook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.webhooks[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

func (r *MemoryWebhookRepository) FindByURL(_ context.Context, url string) (*entity.Webhook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.urls[url]
	if !ok {
		return nil, nil
	}
	copyItem := *r.webhooks[id]
	return &copyItem, nil
}

// List returns a point-in-time copy of all webhooks ordered by id.
func (r *MemoryWebhookRepository) List(_ context.Context) ([]*entity.Webhook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entity.Webhook, 0, len(r.webhooks))
	for _, item := range r.webhooks {
		copyItem := *item
		items = append(items, &copyItem)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
