package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/pkg/logger"
)

// RazorpaySignatureHeader carries the hex HMAC of the raw webhook body
const RazorpaySignatureHeader = "X-Razorpay-Signature"

type WebhookService interface {
	HandleRazorpayWebhook(ctx context.Context, body []byte, signature string) (entities.WebhookOutcome, error)
}

// WebhookHandler handles provider webhooks
type WebhookHandler struct {
	webhookUsecase WebhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookUsecase WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookUsecase: webhookUsecase}
}

// HandleRazorpayWebhook verifies and reconciles an account event. Every
// authenticated delivery is acknowledged so the provider does not redeliver.
// POST /api/v1/webhooks/razorpay
func (h *WebhookHandler) HandleRazorpayWebhook(c *gin.Context) {
	// the signature covers these exact bytes; nothing may bind the body first
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Warn(c.Request.Context(), "Failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	_, err = h.webhookUsecase.HandleRazorpayWebhook(c.Request.Context(), body, c.GetHeader(RazorpaySignatureHeader))
	if errors.Is(err, domainerrors.ErrAuthenticationFailure) {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
