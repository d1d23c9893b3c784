package mapper

import (
	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/types"
)

// PaymentToResponse returns the public summary of a payment. The same
// shape is posted to webhook subscribers.
func PaymentToResponse(item *entity.Payment) *types.PaymentResponse {
	if item == nil {
		return nil
	}

	return &types.PaymentResponse{
		TransactionID: item.TransactionID,
		OrderNumber:   item.OrderNumber,
		Status:        item.Status,
	}
}

func WebhookToResponse(item *entity.Webhook) *types.WebhookResponse {
	if item == nil {
		return nil
	}

	return &types.WebhookResponse{
		ID:  item.ID,
		URL: item.URL,
	}
}
