package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/infrastructure/models"
	"producer-payout.backend/pkg/utils"
)

// ReconciliationFailureRepositoryImpl stores the webhook dead-letter log
type ReconciliationFailureRepositoryImpl struct {
	db *gorm.DB
}

func NewReconciliationFailureRepository(db *gorm.DB) *ReconciliationFailureRepositoryImpl {
	return &ReconciliationFailureRepositoryImpl{db: db}
}

func (r *ReconciliationFailureRepositoryImpl) Create(ctx context.Context, failure *entities.ReconciliationFailure) error {
	if failure.ID == uuid.Nil {
		failure.ID = utils.NewRecordID()
	}
	now := time.Now()
	failure.CreatedAt = now
	failure.UpdatedAt = now

	m := &models.ReconciliationFailure{
		ID:           failure.ID,
		AccountID:    failure.AccountID,
		EventType:    failure.EventType,
		Payload:      string(failure.Payload),
		ErrorMessage: failure.ErrorMessage,
		Attempts:     failure.Attempts,
		ResolvedAt:   failure.ResolvedAt.Ptr(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ReconciliationFailureRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.ReconciliationFailure, error) {
	var m models.ReconciliationFailure
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toReconciliationFailureEntity(&m), nil
}

func (r *ReconciliationFailureRepositoryImpl) List(ctx context.Context, includeResolved bool, pagination utils.PaginationParams) ([]*entities.ReconciliationFailure, int64, error) {
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.ReconciliationFailure{})
		if !includeResolved {
			query = query.Where("resolved_at IS NULL")
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.ReconciliationFailure
	if err := scoped().
		Order("created_at DESC, id DESC").
		Limit(pagination.Limit).
		Offset(pagination.CalculateOffset()).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.ReconciliationFailure, 0, len(ms))
	for i := range ms {
		items = append(items, toReconciliationFailureEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *ReconciliationFailureRepositoryImpl) CountUnresolved(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ReconciliationFailure{}).
		Where("resolved_at IS NULL").
		Count(&total).Error
	return total, err
}

func (r *ReconciliationFailureRepositoryImpl) MarkResolved(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.ReconciliationFailure{}).
		Where("id = ? AND resolved_at IS NULL", id).
		Updates(map[string]interface{}{
			"resolved_at": now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ReconciliationFailureRepositoryImpl) IncrementAttempts(ctx context.Context, id uuid.UUID, errMsg string) error {
	result := r.db.WithContext(ctx).Model(&models.ReconciliationFailure{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":      gorm.Expr("attempts + 1"),
			"error_message": errMsg,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toReconciliationFailureEntity(m *models.ReconciliationFailure) *entities.ReconciliationFailure {
	return &entities.ReconciliationFailure{
		ID:           m.ID,
		AccountID:    m.AccountID,
		EventType:    m.EventType,
		Payload:      json.RawMessage(m.Payload),
		ErrorMessage: m.ErrorMessage,
		Attempts:     m.Attempts,
		ResolvedAt:   null.TimeFromPtr(m.ResolvedAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
