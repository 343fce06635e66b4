package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/usecases"
	"producer-payout.backend/pkg/utils"
)

func adminRouter(stub deadLetterServiceStub) *gin.Engine {
	h := NewAdminHandler(stub)
	r := gin.New()
	r.GET("/admin/reconciliation-failures", h.ListReconciliationFailures)
	r.POST("/admin/reconciliation-failures/:id/replay", h.ReplayReconciliationFailure)
	r.POST("/admin/reconciliation-failures/:id/resolve", h.ResolveReconciliationFailure)
	return r
}

func TestAdminHandler_ListReconciliationFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got entities.ReconciliationFailureFilter
	r := adminRouter(deadLetterServiceStub{
		listFn: func(_ context.Context, filter entities.ReconciliationFailureFilter) ([]*entities.ReconciliationFailure, utils.PaginationMeta, error) {
			got = filter
			return []*entities.ReconciliationFailure{{ID: uuid.New(), AccountID: "acc_1"}}, utils.CalculateMeta(1, 2, 5), nil
		},
	})

	w := doRequest(r, http.MethodGet, "/admin/reconciliation-failures?page=2&limit=5&includeResolved=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.ReconciliationFailureFilter{IncludeResolved: true, Page: 2, Limit: 5}, got)
	assert.Contains(t, w.Body.String(), `"accountId":"acc_1"`)
	assert.Contains(t, w.Body.String(), `"totalCount":1`)

	w = doRequest(r, http.MethodGet, "/admin/reconciliation-failures?page=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_Replay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	r := adminRouter(deadLetterServiceStub{
		replayFn: func(_ context.Context, got uuid.UUID) (*usecases.ReplayResult, error) {
			if got != id {
				return nil, domainerrors.NotFound("reconciliation failure not found")
			}
			return &usecases.ReplayResult{
				Failure: &entities.ReconciliationFailure{ID: id, Attempts: 1},
				Outcome: entities.OutcomeReconciled,
			}, nil
		},
	})

	w := doRequest(r, http.MethodPost, "/admin/reconciliation-failures/not-a-uuid/replay", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/admin/reconciliation-failures/"+uuid.NewString()+"/replay", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/admin/reconciliation-failures/"+id.String()+"/replay", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"reconciled"`)
}

func TestAdminHandler_Resolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	r := adminRouter(deadLetterServiceStub{
		resolveFn: func(_ context.Context, got uuid.UUID) error {
			if got != id {
				return domainerrors.NotFound("unresolved reconciliation failure not found")
			}
			return nil
		},
	})

	w := doRequest(r, http.MethodPost, "/admin/reconciliation-failures/"+id.String()+"/resolve", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resolved":true`)

	w = doRequest(r, http.MethodPost, "/admin/reconciliation-failures/"+uuid.NewString()+"/resolve", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
