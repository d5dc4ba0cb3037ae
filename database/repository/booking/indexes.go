package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Snapshot query: active bookings at one venue.
		{
			Keys:    bson.D{{Key: "location_key", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("location_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "location_key", Value: 1}, {Key: "date_key", Value: 1}},
			Options: options.Index().SetName("location_date_idx"),
		},
		// Finish sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "ends_at", Value: 1}},
			Options: options.Index().SetName("status_ends_at_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
