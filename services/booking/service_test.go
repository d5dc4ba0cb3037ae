package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campusvenue/models"
	"campusvenue/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var earlyApril25 = time.Date(2025, time.April, 25, 7, 0, 0, 0, time.UTC)

type harness struct {
	svc       *DefaultBookingService
	bookings  *fakeBookingRepo
	blackouts *fakeBlackoutRepo
	locker    *fakeLocker
	cache     *memoryBlackoutCache
}

func newHarness(t *testing.T, existing ...models.Booking) *harness {
	t.Helper()
	h := &harness{
		bookings:  &fakeBookingRepo{bookings: existing},
		blackouts: &fakeBlackoutRepo{},
		locker:    newFakeLocker(),
		cache:     &memoryBlackoutCache{},
	}
	h.svc = NewBookingService(h.bookings, h.blackouts, scheduling.NewSchedulingEngine(zap.NewNop()),
		h.locker, h.cache, 10*time.Second, zap.NewNop())
	h.svc.Now = func() time.Time { return earlyApril25 }
	return h
}

func stored(id, location, date, timeRange string, status models.BookingStatus) models.Booking {
	return models.Booking{
		ID:          id,
		Title:       "Event " + id,
		Location:    location,
		LocationKey: scheduling.NormalizeLocation(location),
		Date:        date,
		TimeRange:   timeRange,
		Status:      status,
	}
}

func TestCreateBookingStoresAppliedBooking(t *testing.T) {
	h := newHarness(t)

	resp, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title:    "Orientation",
		Location: " MPH 1 ",
		Date:     "Apr 25 2025",
		Time:     "9:00 - 11:00 AM",
	})
	require.NoError(t, err)

	b := resp.Booking
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.StatusApplied, b.Status)
	assert.Equal(t, "MPH 1", b.Location)
	assert.Equal(t, "mph 1", b.LocationKey)
	assert.Equal(t, "2025-04-25", b.DateKey)
	require.NotNil(t, b.StartsAt)
	require.NotNil(t, b.EndsAt)
	assert.Equal(t, time.Date(2025, time.April, 25, 9, 0, 0, 0, time.UTC), *b.StartsAt)
	assert.Equal(t, time.Date(2025, time.April, 25, 11, 0, 0, 0, time.UTC), *b.EndsAt)

	require.Len(t, h.bookings.bookings, 1)
	assert.Equal(t, []string{"mph 1:2025-04-25"}, h.locker.acquired)
	assert.Empty(t, h.locker.held, "lock must be released")
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	existing := stored("a", "MPH 1", "April 25, 2025", "9:00 AM - 11:00 AM", models.StatusApproved)
	h := newHarness(t, existing)

	_, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title: "Clash", Location: "mph 1", Date: "April 25, 2025", Time: "10:00 AM - 12:00 PM",
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, "a", conflict.Conflicts[0].ID)
	assert.Equal(t, "Event a", conflict.Summaries()[0].Title)
	assert.Len(t, h.bookings.bookings, 1)
	assert.Empty(t, h.locker.held)
}

func TestCreateBookingAllowsTouchingAndInactive(t *testing.T) {
	h := newHarness(t,
		stored("a", "MPH 1", "April 25, 2025", "9:00 AM - 11:00 AM", models.StatusApplied),
		stored("b", "MPH 1", "April 25, 2025", "11:00 AM - 1:00 PM", models.StatusRejected),
	)

	_, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title: "Next", Location: "MPH 1", Date: "April 25, 2025", Time: "11:00 AM - 12:00 PM",
	})
	require.NoError(t, err)
}

func TestCreateBookingReportsUnverifiable(t *testing.T) {
	h := newHarness(t, stored("x", "MPH 1", "April 25, 2025", "sometime after lunch", models.StatusApplied))

	resp, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title: "Talk", Location: "MPH 1", Date: "April 25, 2025", Time: "2 PM - 3 PM",
	})
	require.NoError(t, err)
	require.Len(t, resp.Unverifiable, 1)
	assert.Equal(t, "x", resp.Unverifiable[0].ID)
}

func TestCreateBookingParseErrorSkipsLock(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title: "Bad", Location: "MPH 1", Date: "Smarch 3, 2025", Time: "9 AM",
	})
	var pe *scheduling.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, scheduling.FieldDate, pe.Field)
	assert.Empty(t, h.locker.acquired)
}

func TestCreateBookingRequiresLocation(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title: "Nowhere", Location: "  ", Date: "April 25, 2025", Time: "9 AM",
	})
	require.ErrorIs(t, err, ErrLocationRequired)
}

func TestCreateBookingLockHeld(t *testing.T) {
	h := newHarness(t)
	h.locker.held["mph 1:2025-04-25"] = true

	_, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title: "Busy", Location: "MPH 1", Date: "April 25, 2025", Time: "9 AM - 10 AM",
	})
	require.ErrorIs(t, err, ErrLockNotAcquired)
	assert.Empty(t, h.bookings.bookings)
}

func TestCreateBookingOnBlackoutDate(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.AddBlackout(context.Background(), models.BlackoutRequest{Date: "Dec 25 2025", Reason: "Holiday"})
	require.NoError(t, err)

	_, err = h.svc.CreateBooking(context.Background(), models.BookingRequest{
		Title: "Party", Location: "MPH 1", Date: "December 25, 2025", Time: "6 PM - 8 PM",
	})
	require.ErrorIs(t, err, ErrBlackoutDate)
}

func TestConcurrentOverlappingCreatesAdmitOne(t *testing.T) {
	h := newHarness(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.CreateBooking(context.Background(), models.BookingRequest{
				Title: "Rush", Location: "MPH 1", Date: "April 25, 2025", Time: "9:00 AM - 11:00 AM",
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			var conflict *ConflictError
			if !errors.As(err, &conflict) && !errors.Is(err, ErrLockNotAcquired) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, h.bookings.bookings, 1)
}

func TestCheckConflicts(t *testing.T) {
	h := newHarness(t,
		stored("a", "MPH 1", "April 25, 2025", "9:00 AM - 11:00 AM", models.StatusApplied),
		stored("b", "Gym", "April 25, 2025", "9:00 AM - 11:00 AM", models.StatusApplied),
	)

	resp, err := h.svc.CheckConflicts(context.Background(), models.ConflictCheckRequest{
		Location: "MPH 1", Date: "Apr 25, 2025", Time: "10 - 11 AM",
	})
	require.NoError(t, err)
	assert.True(t, resp.HasConflicts)
	assert.Equal(t, "April 25, 2025", resp.Date)
	assert.Equal(t, "10:00 AM - 11:00 AM", resp.Time)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "a", resp.Conflicts[0].ID)
}

func TestCheckConflictsRequiresLocation(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.CheckConflicts(context.Background(), models.ConflictCheckRequest{Date: "April 25, 2025", Time: "9 AM"})
	require.ErrorIs(t, err, ErrLocationRequired)
}

func TestSuggestSoonestDay(t *testing.T) {
	h := newHarness(t, stored("a", "MPH 1", "April 25, 2025", "9:00 AM - 11:00 AM", models.StatusApproved))

	resp, err := h.svc.Suggest(context.Background(), "MPH 1", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "April 25, 2025", resp.Date)
	assert.Equal(t, 1, resp.DaysExamined)

	var times []string
	for _, s := range resp.Suggestions {
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{
		"8:00 AM - 9:00 AM",
		"11:00 AM - 12:00 PM",
		"11:00 AM - 1:00 PM",
		"11:00 AM - 2:00 PM",
	}, times)
	assert.Equal(t, "April 25, 2025 • 8:00 AM - 9:00 AM", resp.Suggestions[0].Label)
}

func TestSuggestSkipsBlackout(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.AddBlackout(context.Background(), models.BlackoutRequest{Date: "april 25 2025"})
	require.NoError(t, err)

	resp, err := h.svc.Suggest(context.Background(), "MPH 1", "", 30)
	require.NoError(t, err)
	assert.Equal(t, "April 26, 2025", resp.Date)
	assert.Equal(t, 2, resp.DaysExamined)
	assert.Len(t, resp.Suggestions, 4)
}

func TestSuggestSpecificDateIsUncapped(t *testing.T) {
	h := newHarness(t, stored("a", "MPH 1", "April 25, 2025", "9:00 AM - 11:00 AM", models.StatusApproved))

	resp, err := h.svc.Suggest(context.Background(), "MPH 1", "Apr 25, 2025", 0)
	require.NoError(t, err)
	assert.Equal(t, "April 25, 2025", resp.Date)
	assert.Len(t, resp.Suggestions, 5)
}

func TestSuggestUnreadableDateIsEmpty(t *testing.T) {
	h := newHarness(t)

	resp, err := h.svc.Suggest(context.Background(), "MPH 1", "someday", 0)
	require.NoError(t, err)
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
}

func TestListBookingsByDate(t *testing.T) {
	a := stored("a", "MPH 1", "April 25, 2025", "9 AM", models.StatusApplied)
	a.DateKey = "2025-04-25"
	b := stored("b", "MPH 1", "April 26, 2025", "9 AM", models.StatusApplied)
	b.DateKey = "2025-04-26"
	h := newHarness(t, a, b)

	got, err := h.svc.ListBookings(context.Background(), "mph 1", "Apr 26 2025")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	_, err = h.svc.ListBookings(context.Background(), "mph 1", "not a date")
	assert.True(t, scheduling.IsParseError(err))
}

func TestSetStatus(t *testing.T) {
	h := newHarness(t,
		stored("a", "MPH 1", "April 25, 2025", "9 AM", models.StatusApplied),
		stored("f", "MPH 1", "April 20, 2025", "9 AM", models.StatusFinished),
	)
	ctx := context.Background()

	updated, err := h.svc.SetStatus(ctx, "a", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)

	_, err = h.svc.SetStatus(ctx, "a", models.StatusFinished)
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = h.svc.SetStatus(ctx, "missing", models.StatusRejected)
	require.ErrorIs(t, err, ErrBookingNotFound)

	_, err = h.svc.SetStatus(ctx, "f", models.StatusApproved)
	var be *BookingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "status_locked", be.Code)
}

func TestFinishPastBookings(t *testing.T) {
	ended := time.Date(2025, time.April, 24, 11, 0, 0, 0, time.UTC)
	later := time.Date(2025, time.April, 25, 11, 0, 0, 0, time.UTC)
	past := stored("past", "MPH 1", "April 24, 2025", "9 - 11 AM", models.StatusApproved)
	past.EndsAt = &ended
	future := stored("future", "MPH 1", "April 25, 2025", "9 - 11 AM", models.StatusApproved)
	future.EndsAt = &later
	h := newHarness(t, past, future)

	n, err := h.svc.FinishPastBookings(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, earlyApril25, h.bookings.finished)
	assert.Equal(t, models.StatusFinished, h.bookings.bookings[0].Status)
	assert.Equal(t, models.StatusApproved, h.bookings.bookings[1].Status)
}
