package scheduling

import (
	"sort"
	"time"

	"campusvenue/models"

	"go.uber.org/zap"
)

// suggestionDurations are offered at the start of every gap, shortest first.
var suggestionDurations = []int{60, 120, 180, 240}

// SuggestionWindow is a bookable interval offered to the user.
type SuggestionWindow struct {
	Interval
}

// String renders "<date> • <start> - <end>".
func (w SuggestionWindow) String() string {
	return w.Date.String() + " • " + w.TimeRange()
}

type span struct {
	Start int
	End   int
}

// Suggest returns, in chronological order, up to four windows (one to four
// hours long) anchored at the start of every free gap in the operating
// window of day. Bookings whose text cannot be parsed are skipped.
func (se *DefaultSchedulingEngine) Suggest(day CalendarDate, location string, bookings []models.Booking, now time.Time) []SuggestionWindow {
	opening, closing := se.window()
	isToday := day == CalendarDateOf(now)
	nowMinute := MinuteOfDay(now)

	searchStart := opening
	if isToday && nowMinute > searchStart {
		searchStart = nowMinute
	}
	if searchStart >= closing {
		return nil
	}

	busy := se.busyIntervals(day, location, bookings, searchStart)

	var out []SuggestionWindow
	for _, gap := range freeGaps(searchStart, closing, busy) {
		for _, d := range suggestionDurations {
			if gap.End-gap.Start < d {
				break
			}
			if isToday && gap.Start <= nowMinute {
				continue
			}
			out = append(out, SuggestionWindow{Interval{Date: day, Start: gap.Start, End: gap.Start + d}})
		}
	}
	return out
}

// busyIntervals returns the parsed active bookings on day still running at
// searchStart, sorted by start.
func (se *DefaultSchedulingEngine) busyIntervals(day CalendarDate, location string, bookings []models.Booking, searchStart int) []span {
	key := NormalizeLocation(location)
	busy := make([]span, 0, len(bookings))
	for _, b := range bookings {
		if !b.Status.IsActive() {
			continue
		}
		if key != "" && NormalizeLocation(b.Location) != key {
			continue
		}
		iv, err := ParseInterval(b.Date, b.TimeRange)
		if err != nil {
			se.logger().Warn("skipping unparseable booking in availability",
				zap.String("bookingID", b.ID), zap.String("date", b.Date),
				zap.String("time", b.TimeRange), zap.Error(err))
			continue
		}
		if iv.Date != day || iv.End <= searchStart {
			continue
		}
		busy = append(busy, span{Start: iv.Start, End: iv.End})
	}
	sort.SliceStable(busy, func(i, j int) bool {
		return busy[i].Start < busy[j].Start
	})
	return busy
}

// freeGaps subtracts sorted busy spans from [start, end). Overlapping busy
// spans are merged by advancing the cursor to the furthest end seen.
func freeGaps(start, end int, busy []span) []span {
	var gaps []span
	cursor := start
	for _, b := range busy {
		if b.Start >= end {
			break
		}
		if b.Start > cursor {
			gaps = append(gaps, span{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < end {
		gaps = append(gaps, span{Start: cursor, End: end})
	}
	return gaps
}
