package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/factory"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/mapper"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/service"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/types"
)

type WebhookController struct {
	webhookService *service.WebhookService
	logger         logrus.FieldLogger
}

func NewWebhookController(webhookService *service.WebhookService) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
		logger:         factory.NewModuleLogger("webhooks-controller"),
	}
}

func (c *WebhookController) RegisterWebhook(ctx echo.Context) error {
	req, err := types.NewRegisterWebhookRequestFromContext(ctx)
	if err != nil {
		return writeMalformedJSONProblem(ctx)
	}
	if err := req.Validate(); err != nil {
		return writeValidationProblem(ctx, err)
	}

	item, err := c.webhookService.Register(ctx.Request().Context(), req.GetURL())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWebhookAlreadyExists):
			return writeConflictProblem(ctx, "Webhook with the given URL already exists")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeValidationProblem(ctx, err)
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Register webhook failed")
			return writeInternalProblem(ctx)
		}
	}

	ctx.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/webhooks/%d", item.ID))
	return ctx.JSON(http.StatusCreated, mapper.WebhookToResponse(item))
}

func (c *WebhookController) GetWebhook(ctx echo.Context) error {
	req, err := types.NewGetWebhookRequestFromContext(ctx)
	if err != nil {
		return writeConstraintProblem(ctx, err)
	}

	item, err := c.webhookService.GetWebhook(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrWebhookNotFound) {
			return writeNotFoundProblem(ctx, fmt.Sprintf("Webhook with id %d not found", req.ID))
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get webhook failed")
		return writeInternalProblem(ctx)
	}

	return ctx.JSON(http.StatusOK, mapper.WebhookToResponse(item))
}

// ReceiveWebhook is a loopback subscriber for local testing: register
// {base}/webhooks/receiver and payment notifications show up in the log.
func (c *WebhookController) ReceiveWebhook(ctx echo.Context) error {
	var payload types.PaymentResponse
	if err := ctx.Bind(&payload); err != nil {
		return writeMalformedJSONProblem(ctx)
	}

	factory.LoggerWithContext(c.logger, ctx).WithFields(logrus.Fields{
		"transaction_id": payload.TransactionID,
		"order_number":   payload.OrderNumber,
		"status":         payload.Status,
	}).Info("Received webhook callback")

	return ctx.NoContent(http.StatusOK)
}
