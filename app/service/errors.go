package service

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrWebhookNotFound      = errors.New("webhook not found")
	ErrWebhookAlreadyExists = errors.New("webhook already exists")
)
