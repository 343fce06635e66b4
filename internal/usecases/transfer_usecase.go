package usecases

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/domain/repositories"
	"producer-payout.backend/internal/infrastructure/razorpay"
	"producer-payout.backend/pkg/logger"
	"producer-payout.backend/pkg/utils"
)

// TransferUsecase pays producers out through their linked accounts
type TransferUsecase struct {
	producerRepo repositories.ProducerRepository
	provider     TransferProvider
}

func NewTransferUsecase(producerRepo repositories.ProducerRepository, provider TransferProvider) *TransferUsecase {
	return &TransferUsecase{producerRepo: producerRepo, provider: provider}
}

// CreateTransfer sends amount to the producer. The producer must be linked and KYC-complete.
func (u *TransferUsecase) CreateTransfer(ctx context.Context, input *entities.CreateTransferInput) (*entities.TransferResponse, error) {
	minor, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	producer, err := u.producerRepo.GetByID(ctx, input.ProducerID)
	if err != nil {
		return nil, mapStoreError(err, "producer")
	}
	if !producer.HasLinkedAccount() {
		return nil, domainerrors.NewAppError(http.StatusUnprocessableEntity, domainerrors.CodeKYCIncomplete, "producer has no linked account", domainerrors.ErrNoLinkedAccount)
	}
	if !producer.KYCCompleted {
		return nil, domainerrors.KYCIncomplete("producer KYC is not completed")
	}

	currency := currencyOrDefault(input.Currency)
	transfer, err := u.provider.CreateTransfer(ctx, razorpay.CreateTransferRequest{
		Account:  producer.LinkedAccountID.String,
		Amount:   minor,
		Currency: currency,
		Notes:    input.Notes,
	})
	if err != nil {
		logger.Error(ctx, "Transfer failed",
			zap.String("producer_id", producer.ProducerID),
			zap.Int64("amount_minor", minor),
			zap.Error(err),
		)
		return nil, mapProviderError(err)
	}

	logger.Info(ctx, "Transfer created",
		zap.String("producer_id", producer.ProducerID),
		zap.String("transfer_id", transfer.ID),
		zap.Int64("amount_minor", minor),
	)
	return &entities.TransferResponse{
		TransferID:      transfer.ID,
		ProducerID:      producer.ProducerID,
		LinkedAccountID: producer.LinkedAccountID.String,
		Amount:          utils.FromMinorUnits(minor),
		AmountMinor:     minor,
		Currency:        currency,
		Status:          transfer.Status,
	}, nil
}
