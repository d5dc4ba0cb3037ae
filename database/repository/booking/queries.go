package bookingRepo

import (
	"context"
	"time"

	"campusvenue/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func activeStatusFilter() bson.M {
	return bson.M{"$in": models.ActiveStatuses}
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date_key", Value: 1}, {Key: "starts_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	filter := bson.M{}
	if f.LocationKey != "" {
		filter["location_key"] = f.LocationKey
	}
	if f.DateKey != "" {
		filter["date_key"] = f.DateKey
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	return r.find(ctx, filter)
}

// ListActiveByLocation returns every Applied or Approved booking at the venue,
// on any date, including bookings whose date text never parsed.
func (r *mongoBookingRepo) ListActiveByLocation(ctx context.Context, locationKey string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{
		"location_key": locationKey,
		"status":       activeStatusFilter(),
	})
}

// MarkFinished moves active bookings that ended at or before the cutoff to Finished.
func (r *mongoBookingRepo) MarkFinished(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":  activeStatusFilter(),
		"ends_at": bson.M{"$lte": before},
	}
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": models.StatusFinished}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
