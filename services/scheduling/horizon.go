package scheduling

import (
	"time"

	"campusvenue/models"

	"go.uber.org/zap"
)

// HorizonResult is the first day with availability found by FindSoonest.
type HorizonResult struct {
	Date         CalendarDate
	Suggestions  []SuggestionWindow
	DaysExamined int
}

// FindSoonest examines today and the following days, at most maxDays in
// total, and returns the first non-blackout day with availability, capped to
// the suggestion limit. maxDays <= 0 uses the configured horizon.
func (se *DefaultSchedulingEngine) FindSoonest(
	location string,
	maxDays int,
	bookingsByDay map[CalendarDate][]models.Booking,
	blackouts BlackoutSet,
	now time.Time,
) (HorizonResult, bool) {
	if maxDays <= 0 {
		maxDays = se.horizonDays()
	}
	today := CalendarDateOf(now)

	var result HorizonResult
	for i := 0; i < maxDays; i++ {
		day := today.AddDays(i)
		result.DaysExamined++
		if IsBlackout(day, blackouts) {
			continue
		}
		suggestions := se.Suggest(day, location, bookingsByDay[day], now)
		if len(suggestions) == 0 {
			continue
		}
		if limit := se.suggestionLimit(); len(suggestions) > limit {
			suggestions = suggestions[:limit]
		}
		result.Date = day
		result.Suggestions = suggestions
		return result, true
	}
	return result, false
}

// SuggestForDate returns every suggestion for the typed date, or none when
// the date is unreadable, blacked out, or earlier than yesterday.
func (se *DefaultSchedulingEngine) SuggestForDate(
	dateText, location string,
	bookings []models.Booking,
	blackouts BlackoutSet,
	now time.Time,
) []SuggestionWindow {
	day, err := ParseDate(dateText)
	if err != nil {
		se.logger().Debug("no suggestions for unreadable date", zap.String("date", dateText), zap.Error(err))
		return nil
	}
	if IsBlackout(day, blackouts) {
		return nil
	}
	if day.Before(CalendarDateOf(now).AddDays(-1)) {
		return nil
	}
	return se.Suggest(day, location, bookings, now)
}
