package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/electoral-demo/voterreg_backend/models"
)

// OTPRepository manages the per-mobile one-time-code records. A new
// issuance supersedes (deletes) everything for the mobile, verify
// flips the latest matching record, and a successful signup consumes
// all records for the mobile. The delete-then-insert sequence is not
// atomic against a concurrent verify; that eventual consistency is
// acceptable for this domain.
type OTPRepository interface {
	DeleteAllForMobile(ctx context.Context, mobile string) error
	Create(ctx context.Context, otp *models.OTP) error
	FindLatest(ctx context.Context, mobile, code string) (*models.OTP, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindVerified(ctx context.Context, mobile string) (*models.OTP, error)
}

type mongoOTPRepository struct {
	collection *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) OTPRepository {
	return &mongoOTPRepository{collection: db.Collection("otps")}
}

func (r *mongoOTPRepository) DeleteAllForMobile(ctx context.Context, mobile string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"mobile": mobile})
	return err
}

func (r *mongoOTPRepository) Create(ctx context.Context, otp *models.OTP) error {
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	res, err := r.collection.InsertOne(ctx, otp)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		otp.ID = id
	}
	return nil
}

// FindLatest returns the most recently created record matching the
// mobile and code exactly, resolving the ambiguity of transiently
// coexisting records in favor of the newest issuance.
func (r *mongoOTPRepository) FindLatest(ctx context.Context, mobile, code string) (*models.OTP, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var otp models.OTP
	err := r.collection.FindOne(ctx, bson.M{"mobile": mobile, "otp": code}, opts).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *mongoOTPRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"verified": true}},
	)
	return err
}

func (r *mongoOTPRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoOTPRepository) FindVerified(ctx context.Context, mobile string) (*models.OTP, error) {
	var otp models.OTP
	err := r.collection.FindOne(ctx, bson.M{"mobile": mobile, "verified": true}).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}
