package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"producer-payout.backend/internal/domain/entities"
	"producer-payout.backend/internal/infrastructure/razorpay"
	"producer-payout.backend/pkg/utils"
)

// Mock ProducerRepository
type MockProducerRepository struct {
	mock.Mock
}

func (m *MockProducerRepository) Create(ctx context.Context, producer *entities.Producer) error {
	args := m.Called(ctx, producer)
	return args.Error(0)
}

func (m *MockProducerRepository) GetByID(ctx context.Context, producerID string) (*entities.Producer, error) {
	args := m.Called(ctx, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Producer), args.Error(1)
}

func (m *MockProducerRepository) FindByLinkedAccountID(ctx context.Context, accountID string) ([]*entities.Producer, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Producer), args.Error(1)
}

func (m *MockProducerRepository) UpdateFields(ctx context.Context, producerID string, fields entities.ProducerFields) error {
	args := m.Called(ctx, producerID, fields)
	return args.Error(0)
}

func (m *MockProducerRepository) CompareAndSwapStatus(ctx context.Context, producerID string, expectedVersion int64, update entities.StatusWrite) error {
	args := m.Called(ctx, producerID, expectedVersion, update)
	return args.Error(0)
}

func (m *MockProducerRepository) SetLinkedAccount(ctx context.Context, producerID, accountID, accountStatus string) error {
	args := m.Called(ctx, producerID, accountID, accountStatus)
	return args.Error(0)
}

func (m *MockProducerRepository) CompleteKYC(ctx context.Context, producerID, accountID string, bank entities.BankDetails) error {
	args := m.Called(ctx, producerID, accountID, bank)
	return args.Error(0)
}

// Mock ReconciliationFailureRepository
type MockReconciliationFailureRepository struct {
	mock.Mock
}

func (m *MockReconciliationFailureRepository) Create(ctx context.Context, failure *entities.ReconciliationFailure) error {
	args := m.Called(ctx, failure)
	return args.Error(0)
}

func (m *MockReconciliationFailureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ReconciliationFailure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReconciliationFailure), args.Error(1)
}

func (m *MockReconciliationFailureRepository) List(ctx context.Context, includeResolved bool, pagination utils.PaginationParams) ([]*entities.ReconciliationFailure, int64, error) {
	args := m.Called(ctx, includeResolved, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.ReconciliationFailure), args.Get(1).(int64), args.Error(2)
}

func (m *MockReconciliationFailureRepository) CountUnresolved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReconciliationFailureRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReconciliationFailureRepository) IncrementAttempts(ctx context.Context, id uuid.UUID, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

// Mock provider client
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateAccount(ctx context.Context, req razorpay.CreateAccountRequest) (*razorpay.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Account), args.Error(1)
}

func (m *MockProvider) RequestProduct(ctx context.Context, accountID string, tncAccepted bool) (*razorpay.Product, error) {
	args := m.Called(ctx, accountID, tncAccepted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Product), args.Error(1)
}

func (m *MockProvider) UpdateProductSettlements(ctx context.Context, accountID, productID string, settlements razorpay.SettlementDetails, tncAccepted bool) (*razorpay.Product, error) {
	args := m.Called(ctx, accountID, productID, settlements, tncAccepted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Product), args.Error(1)
}

func (m *MockProvider) CreateTransfer(ctx context.Context, req razorpay.CreateTransferRequest) (*razorpay.Transfer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Transfer), args.Error(1)
}

func (m *MockProvider) CreateOrder(ctx context.Context, req razorpay.CreateOrderRequest) (*razorpay.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Order), args.Error(1)
}

// Mock WebhookRecorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordWebhook(event string, outcome entities.WebhookOutcome) {
	m.Called(event, outcome)
}

// Mock EventReplayer
type MockReplayer struct {
	mock.Mock
}

func (m *MockReplayer) Replay(ctx context.Context, body []byte) (entities.WebhookOutcome, error) {
	args := m.Called(ctx, body)
	return args.Get(0).(entities.WebhookOutcome), args.Error(1)
}
