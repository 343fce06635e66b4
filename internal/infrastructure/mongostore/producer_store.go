package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
)

const (
	fieldLinkedAccountID       = "linkedAccountId"
	fieldKYCCompleted          = "kycCompleted"
	fieldRazorpayAccountStatus = "razorpayAccountStatus"
	fieldRazorpayKYCStatus     = "razorpayKycStatus"
	fieldBankDetails           = "bankDetails"
	fieldStatusEventAt         = "statusEventAt"
	fieldVersion               = "version"
	fieldUpdatedAt             = "updatedAt"
)

type bankDetailsDocument struct {
	AccountNumber   string `bson:"accountNumber"`
	IFSCCode        string `bson:"ifscCode"`
	BeneficiaryName string `bson:"beneficiaryName"`
}

type producerDocument struct {
	ProducerID            string               `bson:"_id"`
	LinkedAccountID       *string              `bson:"linkedAccountId,omitempty"`
	KYCCompleted          bool                 `bson:"kycCompleted"`
	RazorpayAccountStatus *string              `bson:"razorpayAccountStatus,omitempty"`
	RazorpayKYCStatus     *string              `bson:"razorpayKycStatus,omitempty"`
	BankDetails           *bankDetailsDocument `bson:"bankDetails,omitempty"`
	StatusEventAt         *int64               `bson:"statusEventAt,omitempty"`
	Version               int64                `bson:"version"`
	CreatedAt             time.Time            `bson:"createdAt"`
	UpdatedAt             time.Time            `bson:"updatedAt"`
}

// ProducerStore implements ProducerRepository on a MongoDB collection
type ProducerStore struct {
	coll *mongo.Collection
}

func NewProducerStore(coll *mongo.Collection) *ProducerStore {
	return &ProducerStore{coll: coll}
}

func (s *ProducerStore) Create(ctx context.Context, producer *entities.Producer) error {
	now := time.Now().UTC()
	if producer.CreatedAt.IsZero() {
		producer.CreatedAt = now
	}
	producer.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, toDocument(producer)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *ProducerStore) GetByID(ctx context.Context, producerID string) (*entities.Producer, error) {
	var doc producerDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": producerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (s *ProducerStore) FindByLinkedAccountID(ctx context.Context, accountID string) ([]*entities.Producer, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{fieldLinkedAccountID: accountID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []producerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	producers := make([]*entities.Producer, 0, len(docs))
	for i := range docs {
		producers = append(producers, docs[i].toEntity())
	}
	return producers, nil
}

func (s *ProducerStore) UpdateFields(ctx context.Context, producerID string, fields entities.ProducerFields) error {
	if fields.IsEmpty() {
		return nil
	}

	set := bson.M{fieldUpdatedAt: time.Now().UTC()}
	if fields.LinkedAccountID != nil {
		set[fieldLinkedAccountID] = *fields.LinkedAccountID
	}
	if fields.RazorpayAccountStatus != nil {
		set[fieldRazorpayAccountStatus] = *fields.RazorpayAccountStatus
	}
	if fields.KYCCompleted != nil {
		set[fieldKYCCompleted] = *fields.KYCCompleted
	}
	if fields.BankDetails != nil {
		set[fieldBankDetails] = bankDetailsDocument(*fields.BankDetails)
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": producerID}, bson.M{"$set": set, "$inc": bumpVersion()})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func bumpVersion() bson.M {
	return bson.M{fieldVersion: int64(1)}
}

// casFilter matches producerID at expectedVersion. Records written by the
// registration flow carry no version field and count as version 0.
func casFilter(producerID string, expectedVersion int64) bson.M {
	if expectedVersion == 0 {
		return bson.M{
			"_id": producerID,
			"$or": bson.A{
				bson.M{fieldVersion: int64(0)},
				bson.M{fieldVersion: bson.M{"$exists": false}},
			},
		}
	}
	return bson.M{"_id": producerID, fieldVersion: expectedVersion}
}

func (s *ProducerStore) CompareAndSwapStatus(ctx context.Context, producerID string, expectedVersion int64, update entities.StatusWrite) error {
	set := bson.M{
		fieldRazorpayAccountStatus: update.AccountStatus,
		fieldRazorpayKYCStatus:     update.KYCStatus,
		fieldKYCCompleted:          update.KYCCompleted,
		fieldUpdatedAt:             time.Now().UTC(),
	}
	if update.EventAt.Valid {
		set[fieldStatusEventAt] = update.EventAt.Int64
	}

	res, err := s.coll.UpdateOne(ctx,
		casFilter(producerID, expectedVersion),
		bson.M{"$set": set, "$inc": bumpVersion()},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrVersionConflict
	}
	return nil
}

func (s *ProducerStore) SetLinkedAccount(ctx context.Context, producerID, accountID, accountStatus string) error {
	filter := bson.M{
		"_id": producerID,
		"$or": bson.A{
			bson.M{fieldLinkedAccountID: bson.M{"$exists": false}},
			bson.M{fieldLinkedAccountID: nil},
			bson.M{fieldLinkedAccountID: ""},
		},
	}
	res, err := s.coll.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{
			fieldLinkedAccountID:       accountID,
			fieldRazorpayAccountStatus: accountStatus,
			fieldUpdatedAt:             time.Now().UTC(),
		},
		"$inc": bumpVersion(),
	})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	if _, err := s.GetByID(ctx, producerID); err != nil {
		return err
	}
	return domainerrors.ErrAlreadyExists
}

func (s *ProducerStore) CompleteKYC(ctx context.Context, producerID, accountID string, bank entities.BankDetails) error {
	completed := true
	return s.UpdateFields(ctx, producerID, entities.ProducerFields{
		LinkedAccountID: &accountID,
		KYCCompleted:    &completed,
		BankDetails:     &bank,
	})
}

func toDocument(p *entities.Producer) producerDocument {
	doc := producerDocument{
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
		bank := bankDetailsDocument(*p.BankDetails)
		doc.BankDetails = &bank
	}
	return doc
}

func (d *producerDocument) toEntity() *entities.Producer {
	p := &entities.Producer{
		ProducerID:            d.ProducerID,
		LinkedAccountID:       null.StringFromPtr(d.LinkedAccountID),
		KYCCompleted:          d.KYCCompleted,
		RazorpayAccountStatus: null.StringFromPtr(d.RazorpayAccountStatus),
		RazorpayKYCStatus:     null.StringFromPtr(d.RazorpayKYCStatus),
		StatusEventAt:         null.Int64FromPtr(d.StatusEventAt),
		Version:               d.Version,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
	if d.BankDetails != nil {
		bank := entities.BankDetails(*d.BankDetails)
		p.BankDetails = &bank
	}
	return p
}
