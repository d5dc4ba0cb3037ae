package models

import "time"

// BookingStatus is the approval state of a venue booking.
type BookingStatus string

const (
	StatusApplied  BookingStatus = "Applied"
	StatusApproved BookingStatus = "Approved"
	StatusRejected BookingStatus = "Rejected"
	StatusFinished BookingStatus = "Finished"
)

// ActiveStatuses are the statuses that hold a venue.
var ActiveStatuses = []BookingStatus{StatusApplied, StatusApproved}

// IsActive reports whether bookings in this status take part in conflict and availability checks.
func (s BookingStatus) IsActive() bool {
	return s == StatusApplied || s == StatusApproved
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusApproved, StatusRejected, StatusFinished:
		return true
	}
	return false
}

// Booking represents an event's reservation of a venue.
type Booking struct {
	ID             string        `bson:"id" json:"id"`                                  // Unique booking identifier (UUID)
	Title          string        `bson:"title" json:"title"`                            // Event title shown on conflicts
	OrganizationID string        `bson:"organization_id" json:"organizationId"`         // Organization that owns the event
	Location       string        `bson:"location" json:"location"`                      // Venue as entered, e.g. "MPH 1"
	LocationKey    string        `bson:"location_key" json:"-"`                         // Trimmed, lowercased location used for lookups
	Date           string        `bson:"date" json:"date"`                              // e.g. "April 25, 2025"
	DateKey        string        `bson:"date_key,omitempty" json:"-"`                   // "2006-01-02" form of Date, empty when unreadable
	TimeRange      string        `bson:"time_range" json:"time"`                        // e.g. "9:00 - 11:00 AM"
	Status         BookingStatus `bson:"status" json:"status"`                          // Applied, Approved, Rejected or Finished
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`                   // Timestamp when the booking was created
	StartsAt       *time.Time    `bson:"starts_at,omitempty" json:"startsAt,omitempty"` // Parsed start, when the text was readable
	EndsAt         *time.Time    `bson:"ends_at,omitempty" json:"endsAt,omitempty"`     // Parsed end, drives the finish sweep
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	Title          string `json:"title" binding:"required"`
	OrganizationID string `json:"organizationId"`
	Location       string `json:"location" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
}

// ConflictCheckRequest is the payload for validating a proposed booking.
type ConflictCheckRequest struct {
	Location string `json:"location" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// StatusUpdateRequest is the payload for approving or rejecting a booking.
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// ConflictSummary is what a caller shows the user about a colliding booking.
type ConflictSummary struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Date   string        `json:"date"`
	Time   string        `json:"time"`
	Status BookingStatus `json:"status"`
}

func (b Booking) Summary() ConflictSummary {
	return ConflictSummary{ID: b.ID, Title: b.Title, Date: b.Date, Time: b.TimeRange, Status: b.Status}
}

// BookingFilter narrows a booking listing. Empty fields match everything.
type BookingFilter struct {
	LocationKey string
	DateKey     string
	Statuses    []BookingStatus
}

// ConflictCheckResponse reports what a proposed booking would collide with.
type ConflictCheckResponse struct {
	Location     string            `json:"location"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	HasConflicts bool              `json:"hasConflicts"`
	Conflicts    []ConflictSummary `json:"conflicts"`
	Unverifiable []ConflictSummary `json:"unverifiable,omitempty"` // Same venue and day, time text unreadable
}

// CreateBookingResponse wraps a stored booking with any warnings raised on the way.
type CreateBookingResponse struct {
	Booking      Booking           `json:"booking"`
	Unverifiable []ConflictSummary `json:"unverifiable,omitempty"`
}
