package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/infrastructure/models"
)

// ProducerRepositoryImpl implements ProducerRepository on GORM
type ProducerRepositoryImpl struct {
	db *gorm.DB
}

func NewProducerRepository(db *gorm.DB) *ProducerRepositoryImpl {
	return &ProducerRepositoryImpl{db: db}
}

func (r *ProducerRepositoryImpl) Create(ctx context.Context, producer *entities.Producer) error {
	now := time.Now()
	if producer.CreatedAt.IsZero() {
		producer.CreatedAt = now
	}
	producer.UpdatedAt = now

	m := toProducerModel(producer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProducerRepositoryImpl) GetByID(ctx context.Context, producerID string) (*entities.Producer, error) {
	var m models.Producer
	if err := r.db.WithContext(ctx).Where("producer_id = ?", producerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProducerEntity(&m), nil
}

func (r *ProducerRepositoryImpl) FindByLinkedAccountID(ctx context.Context, accountID string) ([]*entities.Producer, error) {
	var ms []models.Producer
	if err := r.db.WithContext(ctx).
		Where("linked_account_id = ?", accountID).
		Order("producer_id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	producers := make([]*entities.Producer, 0, len(ms))
	for i := range ms {
		producers = append(producers, toProducerEntity(&ms[i]))
	}
	return producers, nil
}

func (r *ProducerRepositoryImpl) UpdateFields(ctx context.Context, producerID string, fields entities.ProducerFields) error {
	if fields.IsEmpty() {
		return nil
	}

	updates := map[string]interface{}{
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	}
	if fields.LinkedAccountID != nil {
		updates["linked_account_id"] = *fields.LinkedAccountID
	}
	if fields.RazorpayAccountStatus != nil {
		updates["razorpay_account_status"] = *fields.RazorpayAccountStatus
	}
	if fields.KYCCompleted != nil {
		updates["kyc_completed"] = *fields.KYCCompleted
	}
	if fields.BankDetails != nil {
		updates["bank_account_number"] = fields.BankDetails.AccountNumber
		updates["bank_ifsc_code"] = fields.BankDetails.IFSCCode
		updates["bank_beneficiary_name"] = fields.BankDetails.BeneficiaryName
	}

	result := r.db.WithContext(ctx).Model(&models.Producer{}).
		Where("producer_id = ?", producerID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProducerRepositoryImpl) CompareAndSwapStatus(ctx context.Context, producerID string, expectedVersion int64, update entities.StatusWrite) error {
	updates := map[string]interface{}{
		"razorpay_account_status": update.AccountStatus,
		"razorpay_kyc_status":     update.KYCStatus,
		"kyc_completed":           update.KYCCompleted,
		"version":                 gorm.Expr("version + 1"),
		"updated_at":              time.Now(),
	}
	if update.EventAt.Valid {
		updates["status_event_at"] = update.EventAt.Int64
	}

	result := r.db.WithContext(ctx).Model(&models.Producer{}).
		Where("producer_id = ? AND version = ?", producerID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVersionConflict
	}
	return nil
}

func (r *ProducerRepositoryImpl) SetLinkedAccount(ctx context.Context, producerID, accountID, accountStatus string) error {
	result := r.db.WithContext(ctx).Model(&models.Producer{}).
		Where("producer_id = ? AND (linked_account_id IS NULL OR linked_account_id = '')", producerID).
		Updates(map[string]interface{}{
			"linked_account_id":       accountID,
			"razorpay_account_status": accountStatus,
			"version":                 gorm.Expr("version + 1"),
			"updated_at":              time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, producerID); err != nil {
		return err
	}
	return domainerrors.ErrAlreadyExists
}

func (r *ProducerRepositoryImpl) CompleteKYC(ctx context.Context, producerID, accountID string, bank entities.BankDetails) error {
	completed := true
	return r.UpdateFields(ctx, producerID, entities.ProducerFields{
		LinkedAccountID: &accountID,
		KYCCompleted:    &completed,
		BankDetails:     &bank,
	})
}

func toProducerModel(p *entities.Producer) *models.Producer {
	m := &models.Producer{
		ProducerID:            p.ProducerID,
		LinkedAccountID:       p.LinkedAccountID.Ptr(),
		KYCCompleted:          p.KYCCompleted,
		RazorpayAccountStatus: p.RazorpayAccountStatus.Ptr(),
		RazorpayKYCStatus:     p.RazorpayKYCStatus.Ptr(),
		StatusEventAt:         p.StatusEventAt.Ptr(),
		Version:               p.Version,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.BankDetails != nil {
		m.BankAccountNumber = &p.BankDetails.AccountNumber
		m.BankIFSCCode = &p.BankDetails.IFSCCode
		m.BankBeneficiaryName = &p.BankDetails.BeneficiaryName
	}
	return m
}

func toProducerEntity(m *models.Producer) *entities.Producer {
	p := &entities.Producer{
		ProducerID:            m.ProducerID,
		LinkedAccountID:       null.StringFromPtr(m.LinkedAccountID),
		KYCCompleted:          m.KYCCompleted,
		RazorpayAccountStatus: null.StringFromPtr(m.RazorpayAccountStatus),
		RazorpayKYCStatus:     null.StringFromPtr(m.RazorpayKYCStatus),
		StatusEventAt:         null.Int64FromPtr(m.StatusEventAt),
		Version:               m.Version,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
	if m.BankAccountNumber != nil {
		p.BankDetails = &entities.BankDetails{
			AccountNumber:   *m.BankAccountNumber,
			IFSCCode:        derefString(m.BankIFSCCode),
			BeneficiaryName: derefString(m.BankBeneficiaryName),
		}
	}
	return p
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
