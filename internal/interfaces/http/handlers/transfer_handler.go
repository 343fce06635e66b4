package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/interfaces/http/response"
)

type TransferService interface {
	CreateTransfer(ctx context.Context, input *entities.CreateTransferInput) (*entities.TransferResponse, error)
}

// TransferHandler handles payout endpoints
type TransferHandler struct {
	transferUsecase TransferService
}

func NewTransferHandler(transferUsecase TransferService) *TransferHandler {
	return &TransferHandler{transferUsecase: transferUsecase}
}

// CreateTransfer pays a producer out
// POST /api/v1/transfers
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var input entities.CreateTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	transfer, err := h.transferUsecase.CreateTransfer(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, transfer)
}
