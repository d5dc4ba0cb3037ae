package blackoutRepo

import (
	"context"
	"fmt"
	"time"

	"campusvenue/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBlackoutRepo) List(ctx context.Context) ([]models.BlackoutDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	blackouts := []models.BlackoutDate{}
	if err := cursor.All(ctx, &blackouts); err != nil {
		return nil, err
	}
	return blackouts, nil
}

// Upsert stores the blackout keyed by its date; an existing entry keeps its
// created_at and gets the new reason.
func (r *mongoBlackoutRepo) Upsert(ctx context.Context, blackout models.BlackoutDate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"reason": blackout.Reason},
		"$setOnInsert": bson.M{"created_at": blackout.CreatedAt},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"date": blackout.Date}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert blackout date: %w", err)
	}
	return nil
}

func (r *mongoBlackoutRepo) Delete(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"date": date})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
