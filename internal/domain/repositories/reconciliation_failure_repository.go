package repositories

import (
	"context"

	"github.com/google/uuid"
	"producer-payout.backend/internal/domain/entities"
	"producer-payout.backend/pkg/utils"
)

// ReconciliationFailureRepository persists the webhook dead-letter log
type ReconciliationFailureRepository interface {
	Create(ctx context.Context, failure *entities.ReconciliationFailure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ReconciliationFailure, error)
	List(ctx context.Context, includeResolved bool, pagination utils.PaginationParams) ([]*entities.ReconciliationFailure, int64, error)
	CountUnresolved(ctx context.Context) (int64, error)
	MarkResolved(ctx context.Context, id uuid.UUID) error
	IncrementAttempts(ctx context.Context, id uuid.UUID, errMsg string) error
}
