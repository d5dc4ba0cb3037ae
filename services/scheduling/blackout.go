package scheduling

import "strings"

// BlackoutSet holds canonical date strings on which nothing can be booked.
type BlackoutSet map[string]struct{}

func NewBlackoutSet(dates ...string) BlackoutSet {
	set := make(BlackoutSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (s BlackoutSet) Add(date string) {
	s[strings.TrimSpace(date)] = struct{}{}
}

// IsBlackout is an exact membership test on the canonical rendering of date.
func IsBlackout(date CalendarDate, blackouts BlackoutSet) bool {
	_, ok := blackouts[date.String()]
	return ok
}
