package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/domain/repositories"
	"producer-payout.backend/pkg/logger"
	"producer-payout.backend/pkg/utils"
)

// EventReplayer re-runs a verified webhook payload
type EventReplayer interface {
	Replay(ctx context.Context, body []byte) (entities.WebhookOutcome, error)
}

// ReplayResult reports what a manual replay did
type ReplayResult struct {
	Failure *entities.ReconciliationFailure `json:"failure"`
	Outcome entities.WebhookOutcome         `json:"outcome"`
}

// DeadLetterUsecase lets operators inspect and settle failed reconciliations
type DeadLetterUsecase struct {
	failureRepo repositories.ReconciliationFailureRepository
	replayer    EventReplayer
}

func NewDeadLetterUsecase(failureRepo repositories.ReconciliationFailureRepository, replayer EventReplayer) *DeadLetterUsecase {
	return &DeadLetterUsecase{failureRepo: failureRepo, replayer: replayer}
}

// List returns a page of failures, unresolved only unless asked otherwise
func (u *DeadLetterUsecase) List(ctx context.Context, filter entities.ReconciliationFailureFilter) ([]*entities.ReconciliationFailure, utils.PaginationMeta, error) {
	pagination := utils.GetPaginationParams(filter.Page, filter.Limit)
	items, total, err := u.failureRepo.List(ctx, filter.IncludeResolved, pagination)
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return items, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// Replay re-applies the stored payload. Success resolves the entry; another
// store failure bumps its attempt counter and leaves it open.
func (u *DeadLetterUsecase) Replay(ctx context.Context, id uuid.UUID) (*ReplayResult, error) {
	failure, err := u.failureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "reconciliation failure")
	}
	if failure.IsResolved() {
		return nil, domainerrors.Conflict("reconciliation failure already resolved")
	}

	outcome, replayErr := u.replayer.Replay(ctx, failure.Payload)
	if replayErr != nil {
		logger.Warn(ctx, "Replay of reconciliation failure failed",
			zap.String("failure_id", id.String()),
			zap.Error(replayErr),
		)
		if err := u.failureRepo.IncrementAttempts(ctx, id, replayErr.Error()); err != nil {
			return nil, domainerrors.InternalError(err)
		}
	} else if err := u.failureRepo.MarkResolved(ctx, id); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	updated, err := u.failureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "reconciliation failure")
	}
	logger.Info(ctx, "Replayed reconciliation failure",
		zap.String("failure_id", id.String()),
		zap.String("outcome", string(outcome)),
	)
	return &ReplayResult{Failure: updated, Outcome: outcome}, nil
}

// Resolve closes an entry without replaying it
func (u *DeadLetterUsecase) Resolve(ctx context.Context, id uuid.UUID) error {
	if err := u.failureRepo.MarkResolved(ctx, id); err != nil {
		return mapStoreError(err, "unresolved reconciliation failure")
	}
	logger.Info(ctx, "Resolved reconciliation failure", zap.String("failure_id", id.String()))
	return nil
}

// CountUnresolved returns the open backlog size
func (u *DeadLetterUsecase) CountUnresolved(ctx context.Context) (int64, error) {
	return u.failureRepo.CountUnresolved(ctx)
}
