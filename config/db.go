// config/db.go
package config

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the MongoDB connection and prepares collections.
func ConnectDB(cfg *Config) *mongo.Client {
	log.Printf("Connecting to MongoDB at: %s", maskMongoURI(cfg.MongoURI))

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	log.Println("Connected to MongoDB")

	setupCollections(client, cfg.DBName)

	return client
}

// setupCollections ensures collections and indexes exist. The requests
// collection carries a non-unique email index for the public lookup; the
// local credential store enforces unique admin emails.
func setupCollections(client *mongo.Client, dbName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)

	for _, collName := range []string{"requests", "admins", "admin_users"} {
		db.CreateCollection(ctx, collName)
	}

	requestEmailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	}
	if _, err := db.Collection("requests").Indexes().CreateOne(ctx, requestEmailIndex); err != nil {
		log.Printf("Error creating requests email index: %v", err)
	}

	adminEmailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("admin_users").Indexes().CreateOne(ctx, adminEmailIndex); err != nil {
		log.Printf("Error creating admin_users email index: %v", err)
	}

	log.Println("Database collections and indexes setup complete")
}

// maskMongoURI masks the password in a MongoDB URI for logging.
func maskMongoURI(uri string) string {
	if idx := strings.Index(uri, "@"); idx > 0 {
		if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > 0 {
			return uri[:colonIdx+1] + "***" + uri[idx:]
		}
	}
	return uri
}
