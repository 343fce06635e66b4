package usecases

import (
	"context"

	"go.uber.org/zap"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/infrastructure/razorpay"
	"producer-payout.backend/pkg/crypto"
	"producer-payout.backend/pkg/logger"
	"producer-payout.backend/pkg/utils"
)

// PaymentUsecase creates checkout orders and verifies checkout callbacks
type PaymentUsecase struct {
	provider  OrderProvider
	keySecret string
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(provider OrderProvider, keySecret string) *PaymentUsecase {
	return &PaymentUsecase{provider: provider, keySecret: keySecret}
}

// CreateOrder opens a provider order. An empty receipt gets a generated one.
func (u *PaymentUsecase) CreateOrder(ctx context.Context, input *entities.CreateOrderInput) (*entities.OrderResponse, error) {
	minor, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	receipt := input.Receipt
	if receipt == "" {
		if receipt, err = newReceipt(); err != nil {
			return nil, domainerrors.InternalError(err)
		}
	}

	currency := currencyOrDefault(input.Currency)
	order, err := u.provider.CreateOrder(ctx, razorpay.CreateOrderRequest{
		Amount:   minor,
		Currency: currency,
		Receipt:  receipt,
		Notes:    input.Notes,
	})
	if err != nil {
		logger.Error(ctx, "Order creation failed", zap.String("receipt", receipt), zap.Error(err))
		return nil, mapProviderError(err)
	}

	logger.Info(ctx, "Order created", zap.String("order_id", order.ID), zap.String("receipt", receipt))
	return &entities.OrderResponse{
		OrderID:     order.ID,
		Amount:      utils.FromMinorUnits(minor),
		AmountMinor: minor,
		Currency:    currency,
		Receipt:     receipt,
		Status:      order.Status,
	}, nil
}

// VerifyPayment checks the checkout signature over "orderId|paymentId"
func (u *PaymentUsecase) VerifyPayment(ctx context.Context, input *entities.VerifyPaymentInput) bool {
	payload := []byte(input.OrderID + paymentSignatureSeparator + input.PaymentID)
	verified := crypto.VerifyHMACSHA256Hex(payload, input.Signature, u.keySecret)
	if !verified {
		logger.Warn(ctx, "Payment signature mismatch",
			zap.String("order_id", input.OrderID),
			zap.String("payment_id", input.PaymentID),
		)
	}
	return verified
}
