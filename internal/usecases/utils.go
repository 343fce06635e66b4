package usecases

import (
	"errors"
	"fmt"
	"net/http"

	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/infrastructure/razorpay"
	"producer-payout.backend/pkg/crypto"
	"producer-payout.backend/pkg/utils"
)

// mapProviderError turns a provider failure into an AppError. Request-shape
// rejections pass through with their status; anything else is a 502.
func mapProviderError(err error) error {
	var rzErr *razorpay.Error
	if errors.As(err, &rzErr) && passThroughStatus(rzErr.StatusCode) {
		message := rzErr.Description
		if message == "" {
			message = rzErr.Code
		}
		return domainerrors.NewAppError(rzErr.StatusCode, domainerrors.CodeProviderError, message, err)
	}
	return domainerrors.NewAppError(
		http.StatusBadGateway,
		domainerrors.CodeProviderUnavailable,
		"payment provider unavailable",
		fmt.Errorf("%w: %w", domainerrors.ErrProviderUnavailable, err),
	)
}

func passThroughStatus(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	default:
		return false
	}
}

// mapStoreError keeps AppErrors and sentinel lookups readable for the route layer
func mapStoreError(err error, what string) error {
	var appErr *domainerrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(what + " not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict(what + " already exists")
	default:
		return domainerrors.InternalError(err)
	}
}

func parseAmount(amount string) (int64, error) {
	minor, err := utils.ToMinorUnits(amount)
	if err != nil {
		return 0, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidInput, err.Error(), domainerrors.ErrInvalidInput)
	}
	return minor, nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return entities.DefaultCurrency
	}
	return currency
}

func newReceipt() (string, error) {
	token, err := crypto.GenerateRandomToken(receiptRandomBytes)
	if err != nil {
		return "", err
	}
	return receiptPrefix + token, nil
}
