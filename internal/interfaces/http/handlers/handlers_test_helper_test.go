package handlers

import (
	"bytes"
	"context"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"producer-payout.backend/internal/domain/entities"
	"producer-payout.backend/internal/usecases"
	"producer-payout.backend/pkg/utils"
)

func doRequest(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type webhookServiceStub struct {
	handleFn func(ctx context.Context, body []byte, signature string) (entities.WebhookOutcome, error)
}

func (s webhookServiceStub) HandleRazorpayWebhook(ctx context.Context, body []byte, signature string) (entities.WebhookOutcome, error) {
	return s.handleFn(ctx, body, signature)
}

type producerServiceStub struct {
	createFn    func(ctx context.Context, input *entities.CreateLinkedAccountInput) (*entities.LinkedAccountResponse, error)
	completeFn  func(ctx context.Context, producerID string, input *entities.CompleteKYCInput) (*entities.KYCStatusResponse, error)
	kycStatusFn func(ctx context.Context, producerID string) (*entities.KYCStatusResponse, error)
}

func (s producerServiceStub) CreateLinkedAccount(ctx context.Context, input *entities.CreateLinkedAccountInput) (*entities.LinkedAccountResponse, error) {
	return s.createFn(ctx, input)
}

func (s producerServiceStub) CompleteKYC(ctx context.Context, producerID string, input *entities.CompleteKYCInput) (*entities.KYCStatusResponse, error) {
	return s.completeFn(ctx, producerID, input)
}

func (s producerServiceStub) GetKYCStatus(ctx context.Context, producerID string) (*entities.KYCStatusResponse, error) {
	return s.kycStatusFn(ctx, producerID)
}

type transferServiceStub struct {
	createFn func(ctx context.Context, input *entities.CreateTransferInput) (*entities.TransferResponse, error)
}

func (s transferServiceStub) CreateTransfer(ctx context.Context, input *entities.CreateTransferInput) (*entities.TransferResponse, error) {
	return s.createFn(ctx, input)
}

type paymentServiceStub struct {
	orderFn  func(ctx context.Context, input *entities.CreateOrderInput) (*entities.OrderResponse, error)
	verifyFn func(ctx context.Context, input *entities.VerifyPaymentInput) bool
}

func (s paymentServiceStub) CreateOrder(ctx context.Context, input *entities.CreateOrderInput) (*entities.OrderResponse, error) {
	return s.orderFn(ctx, input)
}

func (s paymentServiceStub) VerifyPayment(ctx context.Context, input *entities.VerifyPaymentInput) bool {
	return s.verifyFn(ctx, input)
}

type deadLetterServiceStub struct {
	listFn    func(ctx context.Context, filter entities.ReconciliationFailureFilter) ([]*entities.ReconciliationFailure, utils.PaginationMeta, error)
	replayFn  func(ctx context.Context, id uuid.UUID) (*usecases.ReplayResult, error)
	resolveFn func(ctx context.Context, id uuid.UUID) error
}

func (s deadLetterServiceStub) List(ctx context.Context, filter entities.ReconciliationFailureFilter) ([]*entities.ReconciliationFailure, utils.PaginationMeta, error) {
	return s.listFn(ctx, filter)
}

func (s deadLetterServiceStub) Replay(ctx context.Context, id uuid.UUID) (*usecases.ReplayResult, error) {
	return s.replayFn(ctx, id)
}

func (s deadLetterServiceStub) Resolve(ctx context.Context, id uuid.UUID) error {
	return s.resolveFn(ctx, id)
}

