package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/electoral-demo/voterreg_backend/models"
)

// ApplicationRepository persists submissions and serves the owner-scoped
// status lookup and the public voter search. Create surfaces
// ErrDuplicate when an insert trips a unique index: either the
// applicationId collided or a concurrent submission already approved
// this Aadhaar.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	HasApprovedAadhaar(ctx context.Context, aadhaar string) (bool, error)
	FindByIDForUser(ctx context.Context, applicationID string, userID primitive.ObjectID) (*models.Application, error)
	SearchApprovedByVoterID(ctx context.Context, voterID string) ([]models.Application, error)
	SearchApprovedByName(ctx context.Context, name string) ([]models.Application, error)
}

type mongoApplicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) ApplicationRepository {
	return &mongoApplicationRepository{collection: db.Collection("applications")}
}

func (r *mongoApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, app)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		app.ID = id
	}
	return nil
}

func (r *mongoApplicationRepository) HasApprovedAadhaar(ctx context.Context, aadhaar string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{
		"aadhaar": aadhaar,
		"status":  models.StatusApproved,
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *mongoApplicationRepository) FindByIDForUser(ctx context.Context, applicationID string, userID primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	err := r.collection.FindOne(ctx, bson.M{
		"applicationId": applicationID,
		"userId":        userID,
	}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *mongoApplicationRepository) SearchApprovedByVoterID(ctx context.Context, voterID string) ([]models.Application, error) {
	return r.searchApproved(ctx, bson.M{"voterId": voterID})
}

// SearchApprovedByName matches fullName as a case-insensitive pattern.
func (r *mongoApplicationRepository) SearchApprovedByName(ctx context.Context, name string) ([]models.Application, error) {
	return r.searchApproved(ctx, bson.M{
		"fullName": primitive.Regex{Pattern: name, Options: "i"},
	})
}

func (r *mongoApplicationRepository) searchApproved(ctx context.Context, filter bson.M) ([]models.Application, error) {
	filter["status"] = models.StatusApproved

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
