package scheduling

import (
	"strings"
	"time"

	"campusvenue/models"

	"go.uber.org/zap"
)

const (
	DefaultOpeningMinute   = 8 * 60
	DefaultClosingMinute   = 19 * 60
	DefaultSuggestionLimit = 4
	DefaultHorizonDays     = 30
)

// SchedulingEngine computes venue availability and booking conflicts over a
// caller-supplied snapshot. Implementations hold no mutable state.
type SchedulingEngine interface {
	// Suggest returns bookable windows on day for location.
	Suggest(day CalendarDate, location string, bookings []models.Booking, now time.Time) []SuggestionWindow
	// SuggestForDate is Suggest for a date typed by the user.
	SuggestForDate(dateText, location string, bookings []models.Booking, blackouts BlackoutSet, now time.Time) []SuggestionWindow
	// FindSoonest walks forward from today until a day has availability.
	FindSoonest(location string, maxDays int, bookingsByDay map[CalendarDate][]models.Booking, blackouts BlackoutSet, now time.Time) (HorizonResult, bool)
	// FindConflicts reports existing bookings that collide with proposed.
	FindConflicts(proposed ProposedBooking, bookings []models.Booking) (ConflictReport, error)
}

// DefaultSchedulingEngine is the production SchedulingEngine. Zero-valued
// fields fall back to the package defaults.
type DefaultSchedulingEngine struct {
	Logger          *zap.Logger
	OpeningMinute   int
	ClosingMinute   int
	SuggestionLimit int
	HorizonDays     int
}

var _ SchedulingEngine = (*DefaultSchedulingEngine)(nil)

func NewSchedulingEngine(logger *zap.Logger) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Logger:          logger,
		OpeningMinute:   DefaultOpeningMinute,
		ClosingMinute:   DefaultClosingMinute,
		SuggestionLimit: DefaultSuggestionLimit,
		HorizonDays:     DefaultHorizonDays,
	}
}

func (se *DefaultSchedulingEngine) logger() *zap.Logger {
	if se.Logger == nil {
		return zap.NewNop()
	}
	return se.Logger
}

func (se *DefaultSchedulingEngine) window() (int, int) {
	if se.OpeningMinute == 0 && se.ClosingMinute == 0 {
		return DefaultOpeningMinute, DefaultClosingMinute
	}
	return se.OpeningMinute, se.ClosingMinute
}

func (se *DefaultSchedulingEngine) suggestionLimit() int {
	if se.SuggestionLimit <= 0 {
		return DefaultSuggestionLimit
	}
	return se.SuggestionLimit
}

func (se *DefaultSchedulingEngine) horizonDays() int {
	if se.HorizonDays <= 0 {
		return DefaultHorizonDays
	}
	return se.HorizonDays
}

// NormalizeLocation makes venue names comparable regardless of case and
// surrounding whitespace.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}
