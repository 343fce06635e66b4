package usecases

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/domain/repositories"
	"producer-payout.backend/internal/infrastructure/razorpay"
	"producer-payout.backend/pkg/logger"
)

// ProducerUsecase onboards producers as provider linked accounts
type ProducerUsecase struct {
	producerRepo repositories.ProducerRepository
	provider     AccountProvider
}

// NewProducerUsecase creates a new producer usecase
func NewProducerUsecase(producerRepo repositories.ProducerRepository, provider AccountProvider) *ProducerUsecase {
	return &ProducerUsecase{
		producerRepo: producerRepo,
		provider:     provider,
	}
}

// CreateLinkedAccount registers the producer with the provider and stores the account id
func (u *ProducerUsecase) CreateLinkedAccount(ctx context.Context, input *entities.CreateLinkedAccountInput) (*entities.LinkedAccountResponse, error) {
	producer, err := u.producerRepo.GetByID(ctx, input.ProducerID)
	if err != nil {
		return nil, mapStoreError(err, "producer")
	}
	if producer.HasLinkedAccount() {
		return nil, domainerrors.Conflict("producer already has a linked account")
	}

	referenceID := input.ReferenceID
	if referenceID == "" {
		referenceID = input.ProducerID
	}
	account, err := u.provider.CreateAccount(ctx, razorpay.CreateAccountRequest{
		Email:             input.Email,
		Phone:             input.Phone,
		Type:              razorpay.AccountTypeRoute,
		ReferenceID:       referenceID,
		LegalBusinessName: input.LegalBusinessName,
		BusinessType:      input.BusinessType,
		ContactName:       input.ContactName,
	})
	if err != nil {
		logger.Error(ctx, "Failed to create linked account", zap.String("producer_id", input.ProducerID), zap.Error(err))
		return nil, mapProviderError(err)
	}

	if err := u.producerRepo.SetLinkedAccount(ctx, input.ProducerID, account.ID, account.Status); err != nil {
		// the provider account exists now; keep its id in the logs for manual cleanup
		logger.Error(ctx, "Linked account created but not stored",
			zap.String("producer_id", input.ProducerID),
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("producer already has a linked account")
		}
		return nil, mapStoreError(err, "producer")
	}

	logger.Info(ctx, "Linked account created",
		zap.String("producer_id", input.ProducerID),
		zap.String("account_id", account.ID),
	)
	return &entities.LinkedAccountResponse{
		ProducerID:      input.ProducerID,
		LinkedAccountID: account.ID,
		Status:          account.Status,
	}, nil
}

// CompleteKYC submits settlement details to the provider and marks the
// producer KYC-complete without waiting for a provider verdict.
func (u *ProducerUsecase) CompleteKYC(ctx context.Context, producerID string, input *entities.CompleteKYCInput) (*entities.KYCStatusResponse, error) {
	if !input.TncAccepted {
		return nil, domainerrors.BadRequest("terms and conditions must be accepted")
	}

	producer, err := u.producerRepo.GetByID(ctx, producerID)
	if err != nil {
		return nil, mapStoreError(err, "producer")
	}

	accountID := input.LinkedAccountID
	if accountID == "" {
		accountID = producer.LinkedAccountID.String
	}
	if accountID == "" {
		return nil, domainerrors.NewAppError(http.StatusUnprocessableEntity, domainerrors.CodeInvalidInput, "producer has no linked account", domainerrors.ErrNoLinkedAccount)
	}

	product, err := u.provider.RequestProduct(ctx, accountID, input.TncAccepted)
	if err != nil {
		logger.Error(ctx, "Failed to request route product", zap.String("producer_id", producerID), zap.Error(err))
		return nil, mapProviderError(err)
	}

	settlements := razorpay.SettlementDetails{
		AccountNumber:   input.BankDetails.AccountNumber,
		IFSCCode:        input.BankDetails.IFSCCode,
		BeneficiaryName: input.BankDetails.BeneficiaryName,
	}
	if _, err := u.provider.UpdateProductSettlements(ctx, accountID, product.ID, settlements, input.TncAccepted); err != nil {
		logger.Error(ctx, "Failed to update settlement details", zap.String("producer_id", producerID), zap.Error(err))
		return nil, mapProviderError(err)
	}

	if err := u.producerRepo.CompleteKYC(ctx, producerID, accountID, input.BankDetails); err != nil {
		return nil, mapStoreError(err, "producer")
	}

	logger.Info(ctx, "Manual KYC completed", zap.String("producer_id", producerID), zap.String("account_id", accountID))
	return u.GetKYCStatus(ctx, producerID)
}

// GetKYCStatus returns the producer's onboarding snapshot
func (u *ProducerUsecase) GetKYCStatus(ctx context.Context, producerID string) (*entities.KYCStatusResponse, error) {
	producer, err := u.producerRepo.GetByID(ctx, producerID)
	if err != nil {
		return nil, mapStoreError(err, "producer")
	}
	return &entities.KYCStatusResponse{
		ProducerID:            producer.ProducerID,
		LinkedAccountID:       producer.LinkedAccountID,
		KYCCompleted:          producer.KYCCompleted,
		RazorpayAccountStatus: producer.RazorpayAccountStatus,
		RazorpayKYCStatus:     producer.RazorpayKYCStatus,
		HasBankDetails:        producer.BankDetails != nil,
	}, nil
}
