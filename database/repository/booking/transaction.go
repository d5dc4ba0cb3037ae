package bookingRepo

import (
	"context"
	"fmt"

	"campusvenue/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateIfNoConflict re-reads the venue's active bookings and inserts booking
// inside one transaction. A non-nil error from check aborts the insert and is
// returned unwrapped.
func (r *mongoBookingRepo) CreateIfNoConflict(
	ctx context.Context,
	booking *models.Booking,
	check func(existing []models.Booking) error,
) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var checkErr error
	txnFn := func(sc mongo.SessionContext) error {
		cursor, err := r.coll.Find(sc, bson.M{
			"location_key": booking.LocationKey,
			"status":       activeStatusFilter(),
		})
		if err != nil {
			return fmt.Errorf("load existing bookings failed: %w", err)
		}
		var existing []models.Booking
		if err := cursor.All(sc, &existing); err != nil {
			return fmt.Errorf("decode existing bookings failed: %w", err)
		}

		if err := check(existing); err != nil {
			checkErr = err
			return err
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if checkErr != nil {
			return checkErr
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
