package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// defaultDuration is applied when a time range has no usable end.
const defaultDuration = 60

var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(AM|PM)?$`)

// Interval is a span of wall-clock minutes on Date. End may exceed a day's
// length when a synthesized end runs past midnight.
type Interval struct {
	Date  CalendarDate
	Start int
	End   int
}

// Overlaps uses half-open semantics: touching intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.End-i.Start) * time.Minute
}

// TimeRange renders the interval as re-parseable text, e.g. "8:00 AM - 10:00 AM".
func (i Interval) TimeRange() string {
	return FormatTimeOfDay(i.Start) + " - " + FormatTimeOfDay(i.End)
}

// StartTime and EndTime place the interval in loc.
func (i Interval) StartTime(loc *time.Location) time.Time { return i.Date.At(i.Start, loc) }
func (i Interval) EndTime(loc *time.Location) time.Time   { return i.Date.At(i.End, loc) }

// FormatTimeOfDay renders minutes past midnight on a 12-hour clock.
func FormatTimeOfDay(minutes int) string {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour := m / 60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m%60, meridiem)
}

// ParseDate parses "<MonthName> <day>[,] <year>". The month only needs to
// match the first three letters of a full month name.
func ParseDate(text string) (CalendarDate, error) {
	fail := func(err error) (CalendarDate, error) {
		return CalendarDate{}, &ParseError{Field: FieldDate, Input: text, Err: err}
	}

	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(fields) != 3 {
		return fail(fmt.Errorf("expected month, day and year"))
	}

	month, ok := lookupMonth(fields[0])
	if !ok {
		return fail(ErrUnknownMonth)
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return fail(ErrInvalidDay)
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil || year <= 0 {
		return fail(ErrInvalidYear)
	}

	d := CalendarDate{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return fail(ErrInvalidDay)
	}
	return d, nil
}

func lookupMonth(token string) (time.Month, bool) {
	token = strings.ToLower(strings.TrimSuffix(token, "."))
	if len(token) < 3 {
		return 0, false
	}
	prefix := token[:3]
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()[:3]) == prefix {
			return m, true
		}
	}
	return 0, false
}

type clock struct {
	hour     int
	minute   int
	meridiem string
}

func parseClock(token string) (clock, error) {
	match := clockPattern.FindStringSubmatch(strings.TrimSpace(token))
	if match == nil {
		return clock{}, ErrInvalidTime
	}
	hour, _ := strconv.Atoi(match[1])
	minute := 0
	if match[2] != "" {
		minute, _ = strconv.Atoi(match[2])
	}
	c := clock{hour: hour, minute: minute, meridiem: strings.ToUpper(match[3])}

	if minute > 59 {
		return clock{}, ErrInvalidTime
	}
	if c.meridiem != "" && (hour < 1 || hour > 12) {
		return clock{}, ErrInvalidTime
	}
	if hour > 23 {
		return clock{}, ErrInvalidTime
	}
	return c, nil
}

func (c clock) twelveHour() bool {
	return c.hour >= 1 && c.hour <= 12
}

// minutes converts c to minutes past midnight using meridiem, which may be
// empty for a 24-hour reading.
func (c clock) minutes(meridiem string) int {
	h := c.hour
	switch meridiem {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	}
	return h*60 + c.minute
}

// ParseTimeRange parses "start[ - end]" into minutes past midnight. A missing
// or unreadable end yields start plus one hour.
func ParseTimeRange(text string) (start, end int, err error) {
	parts := strings.SplitN(text, "-", 2)

	startClock, err := parseClock(parts[0])
	if err != nil {
		return 0, 0, &ParseError{Field: FieldStart, Input: text, Err: err}
	}
	start = startClock.minutes(startClock.meridiem)

	if len(parts) < 2 {
		return start, start + defaultDuration, nil
	}
	endClock, err := parseClock(parts[1])
	if err != nil {
		return start, start + defaultDuration, nil
	}
	end = endClock.minutes(endClock.meridiem)

	// "8:00 - 10:00 AM" shares the trailing meridiem unless that would put
	// the start after the end.
	if startClock.meridiem == "" && endClock.meridiem != "" && startClock.twelveHour() {
		if shared := startClock.minutes(endClock.meridiem); shared < end {
			start = shared
		}
	}
	if endClock.meridiem == "" && startClock.meridiem != "" && endClock.twelveHour() && end <= start {
		if shared := endClock.minutes(startClock.meridiem); shared > start {
			end = shared
		}
	}

	// "11:30 PM - 12:30 AM" ends after midnight.
	if startClock.meridiem == "PM" && endClock.meridiem == "AM" && end <= start {
		end += minutesPerDay
	}

	if end <= start {
		return 0, 0, &ParseError{Field: FieldEnd, Input: text, Err: ErrEndNotAfter}
	}
	return start, end, nil
}

// ParseInterval combines ParseDate and ParseTimeRange.
func ParseInterval(dateText, timeRangeText string) (Interval, error) {
	date, err := ParseDate(dateText)
	if err != nil {
		return Interval{}, err
	}
	start, end, err := ParseTimeRange(timeRangeText)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Date: date, Start: start, End: end}, nil
}
