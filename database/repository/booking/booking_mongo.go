package booking

import (
	"context"
	"fmt"
	"time"

	"swiftmove/database"
	"swiftmove/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "bookings"

// MongoBookingRepo persists bookings in MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns the Mongo-backed booking repository and
// ensures the unique index that makes booking creation idempotent per
// payment intent.
func NewMongoBookingRepo() *MongoBookingRepo {
	coll := database.Collection(collectionName)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "payment_intent_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		// Index creation is retried on next startup; queries still work.
		fmt.Printf("warning: failed to ensure booking index: %v\n", err)
	}
	return &MongoBookingRepo{coll: coll}
}

// CreateByIntent inserts the booking. The unique index on
// payment_intent_id turns a duplicate insert into a fetch of the booking
// created the first time, so two commits with the same confirmed intent
// yield exactly one booking number.
func (r *MongoBookingRepo) CreateByIntent(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.GetByIntentID(ctx, booking.PaymentIntentID)
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}
	return booking, nil
}

// GetByIntentID fetches the booking committed for a payment intent.
func (r *MongoBookingRepo) GetByIntentID(ctx context.Context, intentID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"payment_intent_id": intentID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

// GetByNumber fetches a booking by its customer-facing number.
func (r *MongoBookingRepo) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"booking_number": number}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

// HasUsedDiscount reports whether any booking for this email already
// redeemed the code. Redemption is keyed by contact email.
func (r *MongoBookingRepo) HasUsedDiscount(ctx context.Context, email, code string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"discount_code":       code,
		"customer_info.email": email,
	})
	if err != nil {
		return false, fmt.Errorf("failed to count discount usage: %w", err)
	}
	return count > 0, nil
}
