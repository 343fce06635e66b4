package main

import (
	"github.com/gin-gonic/gin"
	"producer-payout.backend/internal/interfaces/http/handlers"
	"producer-payout.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	webhookHandler  *handlers.WebhookHandler
	producerHandler *handlers.ProducerHandler
	transferHandler *handlers.TransferHandler
	paymentHandler  *handlers.PaymentHandler
	adminHandler    *handlers.AdminHandler
	authMiddleware  gin.HandlerFunc
	idempotency     gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Provider webhooks (signature verified, no bearer token)
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/razorpay", d.webhookHandler.HandleRazorpayWebhook)
		}

		// Onboarding routes (protected)
		linkedAccounts := v1.Group("/linked-accounts")
		linkedAccounts.Use(d.authMiddleware)
		{
			linkedAccounts.POST("", d.producerHandler.CreateLinkedAccount)
		}

		producers := v1.Group("/producers")
		producers.Use(d.authMiddleware)
		{
			producers.POST("/:producerId/kyc", d.producerHandler.CompleteKYC)
			producers.GET("/:producerId/kyc", d.producerHandler.GetKYCStatus)
		}

		// Money movement routes (protected, idempotent)
		transfers := v1.Group("/transfers")
		transfers.Use(d.authMiddleware)
		{
			transfers.POST("", d.idempotency, d.transferHandler.CreateTransfer)
		}

		orders := v1.Group("/orders")
		orders.Use(d.authMiddleware)
		{
			orders.POST("", d.idempotency, d.paymentHandler.CreateOrder)
		}

		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("/verify", d.paymentHandler.VerifyPayment)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/reconciliation-failures", d.adminHandler.ListReconciliationFailures)
			admin.POST("/reconciliation-failures/:id/replay", d.adminHandler.ReplayReconciliationFailure)
			admin.POST("/reconciliation-failures/:id/resolve", d.adminHandler.ResolveReconciliationFailure)
		}
	}
}
