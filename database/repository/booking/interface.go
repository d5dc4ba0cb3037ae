package bookingRepo

import (
	"context"
	"time"

	"campusvenue/database"
	"campusvenue/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists venue bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	ListActiveByLocation(ctx context.Context, locationKey string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error)
	MarkFinished(ctx context.Context, before time.Time) (int64, error)
	CreateIfNoConflict(ctx context.Context, booking *models.Booking, check func(existing []models.Booking) error) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
