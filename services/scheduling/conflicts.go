package scheduling

import (
	"campusvenue/models"

	"go.uber.org/zap"
)

// ProposedBooking is a fully specified candidate awaiting validation.
type ProposedBooking struct {
	Location  string
	Date      string
	TimeRange string
}

// ConflictReport lists the bookings that collide with a proposal.
// Unverifiable holds same-venue bookings whose time could not be read on the
// proposed day, or whose date could not be read at all; they are not counted
// as conflicts but must not be ignored either.
type ConflictReport struct {
	Proposed     Interval
	Conflicts    []models.Booking
	Unverifiable []models.Booking
}

func (r ConflictReport) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FindConflicts returns, in input order, the active bookings at the same
// venue and day whose interval overlaps the proposal. A proposal that cannot
// be parsed is an error, never an empty report.
func (se *DefaultSchedulingEngine) FindConflicts(proposed ProposedBooking, bookings []models.Booking) (ConflictReport, error) {
	iv, err := ParseInterval(proposed.Date, proposed.TimeRange)
	if err != nil {
		return ConflictReport{}, err
	}

	report := ConflictReport{Proposed: iv}
	key := NormalizeLocation(proposed.Location)
	for _, b := range bookings {
		if !b.Status.IsActive() || NormalizeLocation(b.Location) != key {
			continue
		}
		existing, err := ParseInterval(b.Date, b.TimeRange)
		if err != nil {
			if day, dateErr := ParseDate(b.Date); dateErr == nil && day != iv.Date {
				continue
			}
			se.logger().Warn("cannot verify booking for conflicts",
				zap.String("bookingID", b.ID), zap.String("location", b.Location),
				zap.String("date", b.Date), zap.String("time", b.TimeRange), zap.Error(err))
			report.Unverifiable = append(report.Unverifiable, b)
			continue
		}
		if existing.Date == iv.Date && iv.Overlaps(existing) {
			report.Conflicts = append(report.Conflicts, b)
		}
	}
	return report, nil
}
