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

type PaymentController struct {
	paymentService *service.PaymentService
	logger         logrus.FieldLogger
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         factory.NewModuleLogger("payments-controller"),
	}
}

func (c *PaymentController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

// CreatePayment answers 201 for a new payment and 200 when the order
// number was already registered.
func (c *PaymentController) CreatePayment(ctx echo.Context) error {
	req, err := types.NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		return writeMalformedJSONProblem(ctx)
	}
	if err := req.Validate(); err != nil {
		return writeValidationProblem(ctx, err)
	}

	item, created, err := c.paymentService.CreateOrGetPayment(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeValidationProblem(ctx, err)
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create payment failed")
		return writeInternalProblem(ctx)
	}

	if !created {
		return ctx.JSON(http.StatusOK, mapper.PaymentToResponse(item))
	}

	ctx.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/payments/%d", item.TransactionID))
	return ctx.JSON(http.StatusCreated, mapper.PaymentToResponse(item))
}

func (c *PaymentController) GetPayment(ctx echo.Context) error {
	req, err := types.NewGetPaymentRequestFromContext(ctx)
	if err != nil {
		return writeConstraintProblem(ctx, err)
	}
	id, ok := req.StoreID()
	if !ok {
		return writeNotFoundProblem(ctx, fmt.Sprintf("Payment with transactionId %d not found", req.TransactionID))
	}

	item, err := c.paymentService.GetByTransactionID(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return writeNotFoundProblem(ctx, fmt.Sprintf("Payment with transactionId %d not found", req.TransactionID))
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get payment failed")
		return writeInternalProblem(ctx)
	}

	return ctx.JSON(http.StatusOK, mapper.PaymentToResponse(item))
}

func (c *PaymentController) GetPaymentByOrderNumber(ctx echo.Context) error {
	req := types.NewGetPaymentByOrderNumberRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeConstraintProblem(ctx, err)
	}

	item, err := c.paymentService.GetByOrderNumber(ctx.Request().Context(), req.OrderNumber)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return writeNotFoundProblem(ctx, fmt.Sprintf("Payment with orderNumber %s not found", req.OrderNumber))
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get payment by order number failed")
		return writeInternalProblem(ctx)
	}

	return ctx.JSON(http.StatusOK, mapper.PaymentToResponse(item))
}
