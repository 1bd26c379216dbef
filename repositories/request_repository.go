package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventnow/eventnow_backend/models"
)

// RequestRepository is the persistence contract for event requests.
// Requests are created once, read publicly by email and by the admin
// console in full, and only ever mutated through UpdateStatus. Nothing
// deletes a request.
type RequestRepository interface {
	Create(ctx context.Context, req *models.Request) error
	FindByID(ctx context.Context, id string) (*models.Request, error)
	FindByEmail(ctx context.Context, email string) ([]models.Request, error)
	FindAll(ctx context.Context) ([]models.Request, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Request, error)
}

// MongoRequestRepository stores requests in the "requests" collection,
// keyed by the generated request ID.
type MongoRequestRepository struct {
	collection *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *MongoRequestRepository {
	return &MongoRequestRepository{collection: db.Collection("requests")}
}

func (r *MongoRequestRepository) Create(ctx context.Context, req *models.Request) error {
	if _, err := r.collection.InsertOne(ctx, req); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (r *MongoRequestRepository) FindByID(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, mapMongoError(err)
	}
	return &req, nil
}

// FindByEmail performs an exact, case-sensitive match on the email field.
// No normalization is applied; the submission form stores emails as typed.
func (r *MongoRequestRepository) FindByEmail(ctx context.Context, email string) ([]models.Request, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, mapMongoError(err)
	}
	defer cursor.Close(ctx)

	var requests []models.Request
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, mapMongoError(err)
	}
	return requests, nil
}

func (r *MongoRequestRepository) FindAll(ctx context.Context) ([]models.Request, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, mapMongoError(err)
	}
	defer cursor.Close(ctx)

	var requests []models.Request
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, mapMongoError(err)
	}
	return requests, nil
}

// UpdateStatus sets only the status field and returns the updated record
// in a single round trip, so the caller's view stays consistent with the
// store. createdAt is never touched.
func (r *MongoRequestRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Request, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status}}

	var updated models.Request
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &updated, nil
}

// mapMongoError translates driver errors onto the backend failure
// taxonomy surfaced to users.
func mapMongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 13 { // Unauthorized
		return fmt.Errorf("%w: %v", models.ErrPermissionDenied, err)
	}

	return err
}
