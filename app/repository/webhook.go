package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
)

var ErrWebhookAlreadyExists = errors.New("webhook already exists")

type WebhookRepository struct {
	db DBTX
}

func NewWebhookRepository(db DBTX) *WebhookRepository {
	return &WebhookRepository{db: db}
}

func (r *WebhookRepository) Create(ctx context.Context, webhook *entity.Webhook) error {
	query := `INSERT INTO webhooks (url, created_at) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, webhook.URL, webhook.CreatedAt)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrWebhookAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	webhook.ID = uint64(id)
	return nil
}

func (r *WebhookRepository) FindByID(ctx context.Context, id uint64) (*entity.Webhook, error) {
	query := `SELECT id, url, created_at FROM webhooks WHERE id = ?`

	webhook := &entity.Webhook{}
	if err := scanWebhook(r.db.QueryRowContext(ctx, query, id), webhook); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return webhook, nil
}

func (r *WebhookRepository) FindByURL(ctx context.Context, url string) (*entity.Webhook, error) {
	query := `SELECT id, url, created_at FROM webhooks WHERE url = ? LIMIT 1`

	webhook := &entity.Webhook{}
	if err := scanWebhook(r.db.QueryRowContext(ctx, query, url), webhook); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return webhook, nil
}

func (r *WebhookRepository) List(ctx context.Context) ([]*entity.Webhook, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, url, created_at FROM webhooks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	webhooks := make([]*entity.Webhook, 0)
	for rows.Next() {
		item := &entity.Webhook{}
		if err := scanWebhook(rows, item); err != nil {
			return nil, err
		}
		webhooks = append(webhooks, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return webhooks, nil
}

func scanWebhook(scan rowScanner, webhook *entity.Webhook) error {
	return scan.Scan(&webhook.ID, &webhook.URL, &webhook.CreatedAt)
}
