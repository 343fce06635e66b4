package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/interfaces/http/response"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, input *entities.CreateOrderInput) (*entities.OrderResponse, error)
	VerifyPayment(ctx context.Context, input *entities.VerifyPaymentInput) bool
}

// PaymentHandler handles checkout endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// CreateOrder opens a checkout order
// POST /api/v1/orders
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var input entities.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	order, err := h.paymentUsecase.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// VerifyPayment checks a checkout callback signature
// POST /api/v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var input entities.VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if !h.paymentUsecase.VerifyPayment(c.Request.Context(), &input) {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}
