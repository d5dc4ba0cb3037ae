package models

import "time"

// BlackoutDate is a day on which no venue can be booked.
type BlackoutDate struct {
	Date      string    `bson:"date" json:"date"`                         // Canonical date, e.g. "December 25, 2025"
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"` // e.g. "Holiday", "Maintenance"
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// BlackoutRequest is the payload for adding a blackout date.
type BlackoutRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}
