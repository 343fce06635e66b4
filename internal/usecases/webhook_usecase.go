package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/domain/repositories"
	"producer-payout.backend/pkg/crypto"
	"producer-payout.backend/pkg/logger"
)

// WebhookUsecase authenticates provider webhooks and reconciles producer status
type WebhookUsecase struct {
	producerRepo repositories.ProducerRepository
	failureRepo  repositories.ReconciliationFailureRepository
	secret       string
	recorder     WebhookRecorder
}

// NewWebhookUsecase creates a new webhook usecase. A nil recorder disables metrics.
func NewWebhookUsecase(
	producerRepo repositories.ProducerRepository,
	failureRepo repositories.ReconciliationFailureRepository,
	webhookSecret string,
	recorder WebhookRecorder,
) *WebhookUsecase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &WebhookUsecase{
		producerRepo: producerRepo,
		failureRepo:  failureRepo,
		secret:       webhookSecret,
		recorder:     recorder,
	}
}

type reconcileResult struct {
	event     string
	accountID string
	outcome   entities.WebhookOutcome
	err       error
}

// HandleRazorpayWebhook verifies signature over the exact body bytes and then
// reconciles. Only an authentication failure is returned as an error; every
// authenticated delivery is acknowledged whatever its outcome.
func (u *WebhookUsecase) HandleRazorpayWebhook(ctx context.Context, body []byte, signature string) (entities.WebhookOutcome, error) {
	if !crypto.VerifyHMACSHA256Hex(body, signature, u.secret) {
		logger.Warn(ctx, "Rejected webhook with invalid signature",
			zap.Int("body_bytes", len(body)),
			zap.Bool("signature_present", signature != ""),
		)
		u.recorder.RecordWebhook(eventLabelUnknown, entities.OutcomeRejected)
		return entities.OutcomeRejected, domainerrors.ErrAuthenticationFailure
	}

	res := u.reconcile(ctx, body)
	u.recorder.RecordWebhook(metricEvent(res), res.outcome)

	if res.outcome == entities.OutcomeStoreError {
		u.deadLetter(ctx, res, body)
	}
	return res.outcome, nil
}

// Replay re-runs a stored payload through the reconciler without signature
// checks or dead-lettering. A store failure is returned so the caller can keep
// the entry open.
func (u *WebhookUsecase) Replay(ctx context.Context, body []byte) (entities.WebhookOutcome, error) {
	res := u.reconcile(ctx, body)
	u.recorder.RecordWebhook(metricEvent(res), res.outcome)
	if res.outcome == entities.OutcomeStoreError {
		return res.outcome, res.err
	}
	return res.outcome, nil
}

func (u *WebhookUsecase) reconcile(ctx context.Context, body []byte) reconcileResult {
	var event entities.AccountWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn(ctx, "Malformed webhook payload", zap.Error(err))
		return reconcileResult{outcome: entities.OutcomeMalformed, err: fmt.Errorf("%w: %w", domainerrors.ErrMalformedPayload, err)}
	}

	res := reconcileResult{event: event.Event}
	if !event.IsReconcilable() {
		logger.Info(ctx, "Ignoring webhook event", zap.String("event", event.Event))
		res.outcome = entities.OutcomeIgnored
		return res
	}

	account := event.Account()
	res.accountID = account.ID
	if account.ID == "" {
		logger.Warn(ctx, "Webhook event without account id", zap.String("event", event.Event))
		res.outcome = entities.OutcomeMalformed
		res.err = domainerrors.ErrMalformedPayload
		return res
	}

	fields := []zap.Field{
		zap.String("event", event.Event),
		zap.String("account_id", account.ID),
		zap.String("account_status", account.Status),
		zap.String("kyc_status", account.KYCStatus),
	}

	var lastErr error
	for attempt := 1; attempt <= maxReconcileAttempts; attempt++ {
		producers, err := u.producerRepo.FindByLinkedAccountID(ctx, account.ID)
		if err != nil {
			return u.storeFailure(ctx, res, err, fields)
		}
		if len(producers) == 0 {
			logger.Warn(ctx, "No producer for linked account", fields...)
			res.outcome = entities.OutcomeLookupMiss
			res.err = domainerrors.ErrLookupMiss
			return res
		}
		if len(producers) > 1 && attempt == 1 {
			logger.Error(ctx, "Multiple producers share a linked account, updating the first",
				append(fields, zap.Int("matches", len(producers)), zap.String("producer_id", producers[0].ProducerID))...)
		}

		producer := producers[0]
		if producer.IsStaleEvent(event.CreatedAt) {
			logger.Info(ctx, "Skipping stale webhook event",
				append(fields,
					zap.String("producer_id", producer.ProducerID),
					zap.Int64("event_created_at", event.CreatedAt),
					zap.Int64("status_event_at", producer.StatusEventAt.Int64),
				)...)
			res.outcome = entities.OutcomeStale
			return res
		}

		write := producer.ReconcileStatus(account.Status, account.KYCStatus, event.CreatedAt)
		err = u.producerRepo.CompareAndSwapStatus(ctx, producer.ProducerID, producer.Version, write)
		if err == nil {
			logger.Info(ctx, "Reconciled producer status",
				append(fields, zap.String("producer_id", producer.ProducerID), zap.Bool("kyc_completed", write.KYCCompleted))...)
			res.outcome = entities.OutcomeReconciled
			return res
		}
		if !errors.Is(err, domainerrors.ErrVersionConflict) {
			return u.storeFailure(ctx, res, err, fields)
		}
		lastErr = err
		logger.Debug(ctx, "Producer changed during reconciliation, retrying", append(fields, zap.Int("attempt", attempt))...)
	}

	return u.storeFailure(ctx, res, fmt.Errorf("after %d attempts: %w", maxReconcileAttempts, lastErr), fields)
}

func (u *WebhookUsecase) storeFailure(ctx context.Context, res reconcileResult, err error, fields []zap.Field) reconcileResult {
	logger.Error(ctx, "Failed to reconcile producer status", append(fields, zap.Error(err))...)
	res.outcome = entities.OutcomeStoreError
	res.err = fmt.Errorf("%w: %w", domainerrors.ErrStoreWriteFailure, err)
	return res
}

func (u *WebhookUsecase) deadLetter(ctx context.Context, res reconcileResult, body []byte) {
	failure := &entities.ReconciliationFailure{
		AccountID:    res.accountID,
		EventType:    res.event,
		Payload:      json.RawMessage(append([]byte(nil), body...)),
		ErrorMessage: res.err.Error(),
	}
	if err := u.failureRepo.Create(ctx, failure); err != nil {
		logger.Error(ctx, "Failed to record reconciliation failure",
			zap.String("event", res.event),
			zap.String("account_id", res.accountID),
			zap.Error(err),
		)
		return
	}
	logger.Warn(ctx, "Recorded reconciliation failure for operator replay",
		zap.String("failure_id", failure.ID.String()),
		zap.String("account_id", res.accountID),
	)
}

func metricEvent(res reconcileResult) string {
	switch res.event {
	case entities.EventAccountActivated, entities.EventAccountUpdated:
		return res.event
	case "":
		return eventLabelUnknown
	default:
		return eventLabelOther
	}
}
