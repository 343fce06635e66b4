package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
)

func seedProducer(t *testing.T, repo *ProducerRepositoryImpl, id string, linked string) *entities.Producer {
	t.Helper()
	p := &entities.Producer{ProducerID: id}
	if linked != "" {
		p.LinkedAccountID = null.StringFrom(linked)
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestProducerRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createProducerTable(t, db)
	repo := NewProducerRepository(db)
	ctx := context.Background()

	seedProducer(t, repo, "prod_1", "acc_1")

	got, err := repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.Equal(t, "prod_1", got.ProducerID)
	require.Equal(t, null.StringFrom("acc_1"), got.LinkedAccountID)
	require.False(t, got.KYCCompleted)
	require.False(t, got.RazorpayKYCStatus.Valid)
	require.Nil(t, got.BankDetails)
	require.EqualValues(t, 0, got.Version)

	err = repo.Create(ctx, &entities.Producer{ProducerID: "prod_1"})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProducerRepository_FindByLinkedAccountID_Ordered(t *testing.T) {
	db := newTestDB(t)
	createProducerTable(t, db)
	repo := NewProducerRepository(db)
	ctx := context.Background()

	seedProducer(t, repo, "prod_b", "acc_dup")
	seedProducer(t, repo, "prod_a", "acc_dup")
	seedProducer(t, repo, "prod_c", "acc_other")

	items, err := repo.FindByLinkedAccountID(ctx, "acc_dup")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "prod_a", items[0].ProducerID)
	require.Equal(t, "prod_b", items[1].ProducerID)

	items, err = repo.FindByLinkedAccountID(ctx, "acc_none")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestProducerRepository_CompareAndSwapStatus(t *testing.T) {
	db := newTestDB(t)
	createProducerTable(t, db)
	repo := NewProducerRepository(db)
	ctx := context.Background()
	seedProducer(t, repo, "prod_1", "acc_1")

	err := repo.CompareAndSwapStatus(ctx, "prod_1", 0, entities.StatusWrite{
		AccountStatus: "activated",
		KYCStatus:     "verified",
		KYCCompleted:  true,
		EventAt:       null.Int64From(1700000000),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Version)
	require.True(t, got.KYCCompleted)
	require.Equal(t, "activated", got.RazorpayAccountStatus.String)
	require.Equal(t, "verified", got.RazorpayKYCStatus.String)
	require.Equal(t, int64(1700000000), got.StatusEventAt.Int64)

	// stale version loses
	err = repo.CompareAndSwapStatus(ctx, "prod_1", 0, entities.StatusWrite{AccountStatus: "suspended"})
	require.ErrorIs(t, err, domainerrors.ErrVersionConflict)

	// without an event timestamp the stored one is kept
	require.NoError(t, repo.CompareAndSwapStatus(ctx, "prod_1", 1, entities.StatusWrite{
		AccountStatus: "activated",
		KYCStatus:     "pending",
	}))
	got, err = repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.EqualValues(t, 2, got.Version)
	require.False(t, got.KYCCompleted)
	require.Equal(t, int64(1700000000), got.StatusEventAt.Int64)
}

func TestProducerRepository_SetLinkedAccount(t *testing.T) {
	db := newTestDB(t)
	createProducerTable(t, db)
	repo := NewProducerRepository(db)
	ctx := context.Background()
	seedProducer(t, repo, "prod_1", "")

	require.NoError(t, repo.SetLinkedAccount(ctx, "prod_1", "acc_new", "created"))
	got, err := repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.Equal(t, "acc_new", got.LinkedAccountID.String)
	require.Equal(t, "created", got.RazorpayAccountStatus.String)

	err = repo.SetLinkedAccount(ctx, "prod_1", "acc_other", "created")
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	err = repo.SetLinkedAccount(ctx, "missing", "acc_x", "created")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProducerRepository_CompleteKYCAndUpdateFields(t *testing.T) {
	db := newTestDB(t)
	createProducerTable(t, db)
	repo := NewProducerRepository(db)
	ctx := context.Background()
	seedProducer(t, repo, "prod_1", "acc_old")

	bank := entities.BankDetails{AccountNumber: "1234567890", IFSCCode: "HDFC0001234", BeneficiaryName: "Asha Rao"}
	require.NoError(t, repo.CompleteKYC(ctx, "prod_1", "acc_new", bank))

	got, err := repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.True(t, got.KYCCompleted)
	require.Equal(t, "acc_new", got.LinkedAccountID.String)
	require.NotNil(t, got.BankDetails)
	require.Equal(t, bank, *got.BankDetails)

	status := "suspended"
	require.NoError(t, repo.UpdateFields(ctx, "prod_1", entities.ProducerFields{RazorpayAccountStatus: &status}))
	got, err = repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.Equal(t, "suspended", got.RazorpayAccountStatus.String)
	require.True(t, got.KYCCompleted)

	require.NoError(t, repo.UpdateFields(ctx, "prod_1", entities.ProducerFields{}))
	require.ErrorIs(t, repo.UpdateFields(ctx, "missing", entities.ProducerFields{RazorpayAccountStatus: &status}), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.CompleteKYC(ctx, "missing", "acc", bank), domainerrors.ErrNotFound)
}

func TestProducerRepository_ClosedDB(t *testing.T) {
	db := newTestDB(t)
	repo := NewProducerRepository(db)
	ctx := context.Background()

	_, err := repo.FindByLinkedAccountID(ctx, "acc_1")
	require.Error(t, err)
	require.NotErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.CompareAndSwapStatus(ctx, "prod_1", 0, entities.StatusWrite{})
	require.Error(t, err)
	require.NotErrorIs(t, err, domainerrors.ErrVersionConflict)
}

func TestProducerRepository_WritesBumpVersion(t *testing.T) {
	db := newTestDB(t)
	createProducerTable(t, db)
	repo := NewProducerRepository(db)
	ctx := context.Background()
	seedProducer(t, repo, "prod_1", "")

	require.NoError(t, repo.SetLinkedAccount(ctx, "prod_1", "acc_1", "created"))
	got, err := repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Version)

	status := "activated"
	require.NoError(t, repo.UpdateFields(ctx, "prod_1", entities.ProducerFields{RazorpayAccountStatus: &status}))
	got, err = repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.EqualValues(t, 2, got.Version)
}

func TestProducerRepository_ManualKYCBeatsStaleStatusWrite(t *testing.T) {
	db := newTestDB(t)
	createProducerTable(t, db)
	repo := NewProducerRepository(db)
	ctx := context.Background()
	seedProducer(t, repo, "prod_1", "acc_1")

	// a reconciler read the record before the manual completion landed
	before, err := repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)

	bank := entities.BankDetails{AccountNumber: "1234567890", IFSCCode: "HDFC0001234", BeneficiaryName: "Asha Rao"}
	require.NoError(t, repo.CompleteKYC(ctx, "prod_1", "acc_2", bank))

	err = repo.CompareAndSwapStatus(ctx, "prod_1", before.Version, entities.StatusWrite{
		AccountStatus: "activated",
		KYCStatus:     "under_review",
		KYCCompleted:  before.KYCCompleted,
	})
	require.ErrorIs(t, err, domainerrors.ErrVersionConflict)

	got, err := repo.GetByID(ctx, "prod_1")
	require.NoError(t, err)
	require.True(t, got.KYCCompleted)
	require.Equal(t, "acc_2", got.LinkedAccountID.String)
	require.False(t, got.RazorpayKYCStatus.Valid)
}
