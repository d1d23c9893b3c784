package controller

import "github.com/labstack/echo/v4"

func RegisterRoutes(e *echo.Echo, payments *PaymentController, webhooks *WebhookController) {
	e.GET("/health", payments.Health)

	e.POST("/payments", payments.CreatePayment)
	e.GET("/payments", payments.GetPaymentByOrderNumber)
	e.GET("/payments/:transactionId", payments.GetPayment)

	e.POST("/webhooks", webhooks.RegisterWebhook)
	e.POST("/webhooks/receiver", webhooks.ReceiveWebhook)
	e.GET("/webhooks/:id", webhooks.GetWebhook)
}
