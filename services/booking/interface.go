package booking

import (
	"context"
	"time"

	"campusvenue/models"
)

// BookingService is the venue booking workflow around the scheduling engine.
type BookingService interface {
	CheckConflicts(ctx context.Context, req models.ConflictCheckRequest) (*models.ConflictCheckResponse, error)
	Suggest(ctx context.Context, location, dateText string, maxDays int) (*models.SuggestionResponse, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.CreateBookingResponse, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, location, dateText string) ([]models.Booking, error)
	SetStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error)
	FinishPastBookings(ctx context.Context) (int64, error)
	FinishBookingsEndedBy(ctx context.Context, cutoff time.Time) (int64, error)

	ListBlackouts(ctx context.Context) ([]models.BlackoutDate, error)
	AddBlackout(ctx context.Context, req models.BlackoutRequest) (*models.BlackoutDate, error)
	RemoveBlackout(ctx context.Context, dateText string) error
}

// Locker grants exclusive, expiring ownership of a key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// BlackoutCache holds the blackout snapshot between writes. Get reports a
// miss with ok == false.
type BlackoutCache interface {
	Get(ctx context.Context) (blackouts []models.BlackoutDate, ok bool, err error)
	Set(ctx context.Context, blackouts []models.BlackoutDate) error
	Invalidate(ctx context.Context) error
}

var _ BookingService = (*DefaultBookingService)(nil)
