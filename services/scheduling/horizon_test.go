package scheduling

import (
	"testing"
	"time"

	"campusvenue/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlackout(t *testing.T) {
	set := NewBlackoutSet("December 25, 2025", " January 1, 2026 ")
	assert.True(t, IsBlackout(CalendarDate{2025, time.December, 25}, set))
	assert.True(t, IsBlackout(CalendarDate{2026, time.January, 1}, set))
	assert.False(t, IsBlackout(CalendarDate{2025, time.December, 24}, set))
	assert.False(t, IsBlackout(CalendarDate{2025, time.December, 25}, nil))
}

func TestFindSoonestFirstOpenDay(t *testing.T) {
	se := NewSchedulingEngine(nil)
	blackouts := NewBlackoutSet("December 25, 2025")
	now := time.Date(2025, time.December, 20, 6, 0, 0, 0, time.Local)

	res, ok := se.FindSoonest("MPH 1", 30, nil, blackouts, now)
	require.True(t, ok)
	assert.Equal(t, CalendarDate{2025, time.December, 20}, res.Date)
	assert.Len(t, res.Suggestions, 4)
	assert.Equal(t, 1, res.DaysExamined)
}

func TestFindSoonestSkipsBlackoutsAndFullDays(t *testing.T) {
	se := NewSchedulingEngine(nil)
	blackouts := NewBlackoutSet("December 25, 2025")
	now := time.Date(2025, time.December, 24, 6, 0, 0, 0, time.Local)
	byDay := map[CalendarDate][]models.Booking{
		{2025, time.December, 24}: {booking("1", "MPH 1", "December 24, 2025", "8:00 AM - 7:00 PM", models.StatusApproved)},
		{2025, time.December, 26}: {booking("2", "MPH 1", "December 26, 2025", "8:00 AM - 6:30 PM", models.StatusApplied)},
		{2025, time.December, 27}: {booking("3", "MPH 1", "December 27, 2025", "10:00 AM - 7:00 PM", models.StatusApproved)},
	}

	res, ok := se.FindSoonest("MPH 1", 30, byDay, blackouts, now)
	require.True(t, ok)
	assert.Equal(t, CalendarDate{2025, time.December, 27}, res.Date)
	assert.Equal(t, 4, res.DaysExamined)
	assert.Equal(t, []string{
		"December 27, 2025 • 8:00 AM - 9:00 AM",
		"December 27, 2025 • 8:00 AM - 10:00 AM",
	}, labels(res.Suggestions))
}

func TestFindSoonestCapsSuggestions(t *testing.T) {
	se := NewSchedulingEngine(nil)
	now := time.Date(2025, time.April, 24, 6, 0, 0, 0, time.Local)
	byDay := map[CalendarDate][]models.Booking{
		{2025, time.April, 24}: {booking("1", "Gym", "April 24, 2025", "1:00 PM - 3:00 PM", models.StatusApproved)},
	}

	res, ok := se.FindSoonest("Gym", 0, byDay, nil, now)
	require.True(t, ok)
	require.Len(t, res.Suggestions, 4)
	for _, w := range res.Suggestions {
		assert.Equal(t, 8*60, w.Start)
	}
}

func TestFindSoonestExhaustsHorizon(t *testing.T) {
	se := NewSchedulingEngine(nil)
	now := time.Date(2025, time.December, 20, 6, 0, 0, 0, time.Local)
	blackouts := NewBlackoutSet()
	for i := 0; i < 5; i++ {
		blackouts.Add(CalendarDateOf(now).AddDays(i).String())
	}

	res, ok := se.FindSoonest("MPH 1", 5, nil, blackouts, now)
	assert.False(t, ok)
	assert.Equal(t, 5, res.DaysExamined)
	assert.Empty(t, res.Suggestions)

	res, ok = se.FindSoonest("MPH 1", 6, nil, blackouts, now)
	require.True(t, ok)
	assert.Equal(t, CalendarDate{2025, time.December, 25}, res.Date)
	assert.Equal(t, 6, res.DaysExamined)
}

func TestFindSoonestDefaultHorizon(t *testing.T) {
	se := &DefaultSchedulingEngine{}
	now := time.Date(2025, time.January, 1, 6, 0, 0, 0, time.Local)
	blackouts := NewBlackoutSet()
	for i := 0; i < 40; i++ {
		blackouts.Add(CalendarDateOf(now).AddDays(i).String())
	}

	res, ok := se.FindSoonest("MPH 1", 0, nil, blackouts, now)
	assert.False(t, ok)
	assert.Equal(t, DefaultHorizonDays, res.DaysExamined)
}

func TestSuggestForDate(t *testing.T) {
	se := NewSchedulingEngine(nil)
	now := time.Date(2025, time.April, 20, 6, 0, 0, 0, time.Local)
	bookings := []models.Booking{
		booking("1", "Gym", "April 25, 2025", "1:00 PM - 3:00 PM", models.StatusApproved),
	}

	got := se.SuggestForDate("Apr 25, 2025", "Gym", bookings, nil, now)
	assert.Len(t, got, 8, "specific-date suggestions are not capped")

	assert.Empty(t, se.SuggestForDate("April 25, 2025", "Gym", bookings, NewBlackoutSet("April 25, 2025"), now))
	assert.Empty(t, se.SuggestForDate("Somemonth 99, 2025", "Gym", bookings, nil, now))
	assert.Empty(t, se.SuggestForDate("April 18, 2025", "Gym", nil, nil, now))
	assert.NotEmpty(t, se.SuggestForDate("April 19, 2025", "Gym", nil, nil, now), "yesterday is still accepted")
}
