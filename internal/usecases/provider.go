package usecases

import (
	"context"

	"producer-payout.backend/internal/domain/entities"
	"producer-payout.backend/internal/infrastructure/razorpay"
)

// AccountProvider creates and configures linked accounts
type AccountProvider interface {
	CreateAccount(ctx context.Context, req razorpay.CreateAccountRequest) (*razorpay.Account, error)
	RequestProduct(ctx context.Context, accountID string, tncAccepted bool) (*razorpay.Product, error)
	UpdateProductSettlements(ctx context.Context, accountID, productID string, settlements razorpay.SettlementDetails, tncAccepted bool) (*razorpay.Product, error)
}

// TransferProvider moves funds to linked accounts
type TransferProvider interface {
	CreateTransfer(ctx context.Context, req razorpay.CreateTransferRequest) (*razorpay.Transfer, error)
}

// OrderProvider opens checkout orders
type OrderProvider interface {
	CreateOrder(ctx context.Context, req razorpay.CreateOrderRequest) (*razorpay.Order, error)
}

// WebhookRecorder observes webhook outcomes
type WebhookRecorder interface {
	RecordWebhook(event string, outcome entities.WebhookOutcome)
}

type noopRecorder struct{}

func (noopRecorder) RecordWebhook(string, entities.WebhookOutcome) {}
