package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoadEnv loads environment variables from the .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on process environment")
	}
}

func DBinstance() *mongo.Client {
	// Load environment variables
	LoadEnv()

	MongoDb := os.Getenv("DB")
	if MongoDb == "" {
		log.Fatal("DB is not set in the environment variables")
	}

	fmt.Println("Connecting to MongoDB...")

	client, err := mongo.NewClient(options.Client().ApplyURI(MongoDb))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Connected to MongoDB")

	return client
}

var Client *mongo.Client = DBinstance()

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database("RestaurantPOS").Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the business rules depend on.
// Order numbers are generated with a read-then-increment sequence, so the
// unique index is what turns a same-day collision into a retryable conflict.
func EnsureIndexes(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := client.Database("RestaurantPOS")

	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	perCollection := map[string][]mongo.IndexModel{
		"order": {
			unique(bson.D{{Key: "order_number", Value: 1}}),
			{Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"table": {
			unique(bson.D{{Key: "qr_code", Value: 1}}),
			unique(bson.D{{Key: "branch_id", Value: 1}, {Key: "table_number", Value: 1}}),
		},
		"promotion": {
			unique(bson.D{{Key: "code", Value: 1}}),
		},
		"user": {
			unique(bson.D{{Key: "email", Value: 1}}),
		},
	}

	for collectionName, models := range perCollection {
		if _, err := db.Collection(collectionName).Indexes().CreateMany(ctx, models); err != nil {
			log.Printf("Failed to create indexes on %s: %v", collectionName, err)
		}
	}
}
