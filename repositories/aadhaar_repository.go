package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/electoral-demo/voterreg_backend/models"
)

// AadhaarRepository is the read-only reference registry. A miss is
// signalled with ErrNotFound so the caller can prompt manual entry; it
// is not an error condition.
type AadhaarRepository interface {
	FindByAadhaar(ctx context.Context, aadhaar string) (*models.AadhaarRecord, error)
}

type mongoAadhaarRepository struct {
	collection *mongo.Collection
}

func NewAadhaarRepository(db *mongo.Database) AadhaarRepository {
	return &mongoAadhaarRepository{collection: db.Collection("aadhaar_records")}
}

func (r *mongoAadhaarRepository) FindByAadhaar(ctx context.Context, aadhaar string) (*models.AadhaarRecord, error) {
	var record models.AadhaarRecord
	err := r.collection.FindOne(ctx, bson.M{"aadhaar": aadhaar}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
