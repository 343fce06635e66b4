package repositories

import (
	"context"

	"producer-payout.backend/internal/domain/entities"
)

// ProducerRepository is the document store for producer payout records
type ProducerRepository interface {
	Create(ctx context.Context, producer *entities.Producer) error
	GetByID(ctx context.Context, producerID string) (*entities.Producer, error)
	// FindByLinkedAccountID returns every record referencing accountID, ordered by producerId.
	FindByLinkedAccountID(ctx context.Context, accountID string) ([]*entities.Producer, error)
	UpdateFields(ctx context.Context, producerID string, fields entities.ProducerFields) error
	// CompareAndSwapStatus applies update only if the stored version equals
	// expectedVersion, bumping the version. Returns ErrVersionConflict otherwise.
	CompareAndSwapStatus(ctx context.Context, producerID string, expectedVersion int64, update entities.StatusWrite) error
	// SetLinkedAccount stores accountID only when none is set yet (ErrAlreadyExists otherwise).
	SetLinkedAccount(ctx context.Context, producerID, accountID, accountStatus string) error
	CompleteKYC(ctx context.Context, producerID, accountID string, bank entities.BankDetails) error
}
