package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/interfaces/http/response"
)

type ProducerService interface {
	CreateLinkedAccount(ctx context.Context, input *entities.CreateLinkedAccountInput) (*entities.LinkedAccountResponse, error)
	CompleteKYC(ctx context.Context, producerID string, input *entities.CompleteKYCInput) (*entities.KYCStatusResponse, error)
	GetKYCStatus(ctx context.Context, producerID string) (*entities.KYCStatusResponse, error)
}

// ProducerHandler handles producer onboarding endpoints
type ProducerHandler struct {
	producerUsecase ProducerService
}

// NewProducerHandler creates a new producer handler
func NewProducerHandler(producerUsecase ProducerService) *ProducerHandler {
	return &ProducerHandler{producerUsecase: producerUsecase}
}

// CreateLinkedAccount registers a producer with the provider
// POST /api/v1/linked-accounts
func (h *ProducerHandler) CreateLinkedAccount(c *gin.Context) {
	var input entities.CreateLinkedAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	account, err := h.producerUsecase.CreateLinkedAccount(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, account)
}

// CompleteKYC records manually collected KYC data
// POST /api/v1/producers/:producerId/kyc
func (h *ProducerHandler) CompleteKYC(c *gin.Context) {
	producerID := c.Param("producerId")
	if producerID == "" {
		response.Error(c, domainerrors.BadRequest("producerId is required"))
		return
	}

	var input entities.CompleteKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	status, err := h.producerUsecase.CompleteKYC(c.Request.Context(), producerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// GetKYCStatus returns the producer's onboarding snapshot
// GET /api/v1/producers/:producerId/kyc
func (h *ProducerHandler) GetKYCStatus(c *gin.Context) {
	status, err := h.producerUsecase.GetKYCStatus(c.Request.Context(), c.Param("producerId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}
