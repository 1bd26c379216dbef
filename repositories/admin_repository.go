package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminDirectory answers whether an identity provider user ID belongs to
// an administrator. Membership is checked on every authenticated request,
// so removing a directory document revokes access on the next load.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// MongoAdminDirectory reads the "admins" collection where the document ID
// is the identity provider's user ID.
type MongoAdminDirectory struct {
	collection *mongo.Collection
}

func NewAdminDirectory(db *mongo.Database) *MongoAdminDirectory {
	return &MongoAdminDirectory{collection: db.Collection("admins")}
}

func (d *MongoAdminDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	count, err := d.collection.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, mapMongoError(err)
	}
	return count > 0, nil
}
