package booking

import (
	"context"
	"sync"
	"time"

	"campusvenue/models"
	"campusvenue/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []models.Booking
	finished time.Time
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBookingRepo) List(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if f.LocationKey != "" && b.LocationKey != f.LocationKey {
			continue
		}
		if f.DateKey != "" && b.DateKey != f.DateKey {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) activeAt(locationKey string) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.LocationKey == locationKey && b.Status.IsActive() {
			out = append(out, b)
		}
	}
	return out
}

func (r *fakeBookingRepo) ListActiveByLocation(_ context.Context, locationKey string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeAt(locationKey), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = status
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBookingRepo) MarkFinished(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = before
	var n int64
	for i := range r.bookings {
		b := &r.bookings[i]
		if b.Status.IsActive() && b.EndsAt != nil && !b.EndsAt.After(before) {
			b.Status = models.StatusFinished
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CreateIfNoConflict(_ context.Context, b *models.Booking, check func([]models.Booking) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := check(r.activeAt(b.LocationKey)); err != nil {
		return err
	}
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *fakeBookingRepo) EnsureIndexes() error { return nil }

type fakeBlackoutRepo struct {
	mu        sync.Mutex
	blackouts []models.BlackoutDate
	listCalls int
}

func (r *fakeBlackoutRepo) List(context.Context) ([]models.BlackoutDate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	return append([]models.BlackoutDate{}, r.blackouts...), nil
}

func (r *fakeBlackoutRepo) Upsert(_ context.Context, b models.BlackoutDate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.blackouts {
		if r.blackouts[i].Date == b.Date {
			r.blackouts[i].Reason = b.Reason
			return nil
		}
	}
	r.blackouts = append(r.blackouts, b)
	return nil
}

func (r *fakeBlackoutRepo) Delete(_ context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.blackouts {
		if r.blackouts[i].Date == date {
			r.blackouts = append(r.blackouts[:i], r.blackouts[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeBlackoutRepo) EnsureIndexes() error { return nil }

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, utils.ErrLockHeld
	}
	l.held[key] = true
	l.acquired = append(l.acquired, key)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, nil
}

type memoryBlackoutCache struct {
	mu          sync.Mutex
	blackouts   []models.BlackoutDate
	ok          bool
	invalidated int
}

func (c *memoryBlackoutCache) Get(context.Context) ([]models.BlackoutDate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blackouts, c.ok, nil
}

func (c *memoryBlackoutCache) Set(_ context.Context, b []models.BlackoutDate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blackouts, c.ok = b, true
	return nil
}

func (c *memoryBlackoutCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blackouts, c.ok = nil, false
	c.invalidated++
	return nil
}
