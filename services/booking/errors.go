package booking

import (
	"fmt"

	"campusvenue/models"
)

// BookingError is a client-facing failure with a stable code.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return e.Message
}

var (
	ErrLocationRequired = &BookingError{Code: "location_required", Message: "a location is required"}
	ErrLockNotAcquired  = &BookingError{Code: "booking_in_progress", Message: "another booking for this venue and date is being processed, try again"}
	ErrInvalidStatus    = &BookingError{Code: "invalid_status", Message: "status must be Approved or Rejected"}
	ErrBookingNotFound  = &BookingError{Code: "booking_not_found", Message: "booking not found"}
	ErrBlackoutNotFound = &BookingError{Code: "blackout_not_found", Message: "blackout date not found"}
	ErrBlackoutDate     = &BookingError{Code: "blackout_date", Message: "no bookings are allowed on this date"}
)

// ConflictError is returned when a proposed booking overlaps active bookings.
type ConflictError struct {
	Conflicts []models.Booking
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		c := e.Conflicts[0]
		return fmt.Sprintf("conflicts with %q on %s at %s (%s)", c.Title, c.Date, c.TimeRange, c.Status)
	}
	return fmt.Sprintf("conflicts with %d existing bookings", len(e.Conflicts))
}

// Summaries lists what the caller should show about each collision.
func (e *ConflictError) Summaries() []models.ConflictSummary {
	out := make([]models.ConflictSummary, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		out = append(out, c.Summary())
	}
	return out
}
