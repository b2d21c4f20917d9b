package account

import (
	"context"
	"fmt"
	"time"

	"swiftmove/database"
	"swiftmove/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "accounts"

// MongoAccountRepo persists customer accounts in MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo returns the Mongo-backed account repository.
func NewMongoAccountRepo() *MongoAccountRepo {
	return &MongoAccountRepo{coll: database.Collection(collectionName)}
}

// GetByEmail fetches an account by email; nil when none exists.
func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&acct)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &acct, nil
}

// GetByID fetches an account by ID; nil when none exists.
func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var acct models.Account
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&acct)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &acct, nil
}

// AddSavedAddress appends a saved address to the account.
func (r *MongoAccountRepo) AddSavedAddress(ctx context.Context, customerID string, addr models.SavedAddress) error {
	update := bson.M{
		"$push": bson.M{"saved_addresses": addr},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": customerID}, update)
	if err != nil {
		return fmt.Errorf("failed to update account addresses: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("account %s not found", customerID)
	}
	return nil
}
