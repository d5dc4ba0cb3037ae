package blackoutRepo

import (
	"context"

	"campusvenue/database"
	"campusvenue/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BlackoutRepository persists campus-wide blackout dates.
type BlackoutRepository interface {
	List(ctx context.Context) ([]models.BlackoutDate, error)
	Upsert(ctx context.Context, blackout models.BlackoutDate) error
	Delete(ctx context.Context, date string) error
	EnsureIndexes() error
}

type mongoBlackoutRepo struct {
	coll *mongo.Collection
}

// NewMongoBlackoutRepo constructs a new MongoDB BlackoutRepository.
func NewMongoBlackoutRepo() BlackoutRepository {
	return &mongoBlackoutRepo{
		coll: database.DB().Collection("blackout_dates"),
	}
}
