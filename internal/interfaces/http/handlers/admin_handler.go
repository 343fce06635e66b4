package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/interfaces/http/response"
	"producer-payout.backend/internal/usecases"
	"producer-payout.backend/pkg/utils"
)

type DeadLetterService interface {
	List(ctx context.Context, filter entities.ReconciliationFailureFilter) ([]*entities.ReconciliationFailure, utils.PaginationMeta, error)
	Replay(ctx context.Context, id uuid.UUID) (*usecases.ReplayResult, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

// AdminHandler exposes the reconciliation dead-letter log to operators
type AdminHandler struct {
	deadLetters DeadLetterService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(deadLetters DeadLetterService) *AdminHandler {
	return &AdminHandler{deadLetters: deadLetters}
}

// ListReconciliationFailures lists dead-letter entries
// GET /api/v1/admin/reconciliation-failures
func (h *AdminHandler) ListReconciliationFailures(c *gin.Context) {
	var filter entities.ReconciliationFailureFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	items, meta, err := h.deadLetters.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items":      items,
		"pagination": meta,
	})
}

// ReplayReconciliationFailure re-runs a stored payload through the reconciler
// POST /api/v1/admin/reconciliation-failures/:id/replay
func (h *AdminHandler) ReplayReconciliationFailure(c *gin.Context) {
	id, ok := failureID(c)
	if !ok {
		return
	}

	result, err := h.deadLetters.Replay(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ResolveReconciliationFailure closes an entry without replay
// POST /api/v1/admin/reconciliation-failures/:id/resolve
func (h *AdminHandler) ResolveReconciliationFailure(c *gin.Context) {
	id, ok := failureID(c)
	if !ok {
		return
	}

	if err := h.deadLetters.Resolve(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "resolved": true})
}

func failureID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid reconciliation failure ID"))
		return uuid.Nil, false
	}
	return id, true
}
