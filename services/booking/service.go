package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	blackoutRepo "campusvenue/database/repository/blackout"
	bookingRepo "campusvenue/database/repository/booking"
	"campusvenue/models"
	"campusvenue/services/scheduling"
	"campusvenue/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBookingService implements BookingService. Every call reads a fresh
// snapshot from the repositories and hands it to Engine.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Blackouts blackoutRepo.BlackoutRepository
	Engine    scheduling.SchedulingEngine
	Locker    Locker
	Cache     BlackoutCache // optional
	Metrics   Observer      // optional
	LockTTL   time.Duration
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewBookingService(
	bookings bookingRepo.BookingRepository,
	blackouts blackoutRepo.BlackoutRepository,
	engine scheduling.SchedulingEngine,
	locker Locker,
	cache BlackoutCache,
	lockTTL time.Duration,
	logger *zap.Logger,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:  bookings,
		Blackouts: blackouts,
		Engine:    engine,
		Locker:    locker,
		Cache:     cache,
		LockTTL:   lockTTL,
		Logger:    logger,
		Now:       time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultBookingService) metrics() Observer {
	if s.Metrics == nil {
		return noopObserver{}
	}
	return s.Metrics
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func summaries(bookings []models.Booking) []models.ConflictSummary {
	out := make([]models.ConflictSummary, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Summary())
	}
	return out
}

func (s *DefaultBookingService) snapshot(ctx context.Context, location string) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListActiveByLocation(ctx, scheduling.NormalizeLocation(location))
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %q: %w", location, err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) CheckConflicts(ctx context.Context, req models.ConflictCheckRequest) (*models.ConflictCheckResponse, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, ErrLocationRequired
	}
	existing, err := s.snapshot(ctx, location)
	if err != nil {
		return nil, err
	}

	report, err := s.Engine.FindConflicts(scheduling.ProposedBooking{
		Location:  location,
		Date:      req.Date,
		TimeRange: req.Time,
	}, existing)
	if err != nil {
		return nil, err
	}
	s.metrics().RecordConflictCheck(len(report.Conflicts), len(report.Unverifiable))

	return &models.ConflictCheckResponse{
		Location:     location,
		Date:         report.Proposed.Date.String(),
		Time:         report.Proposed.TimeRange(),
		HasConflicts: report.HasConflicts(),
		Conflicts:    summaries(report.Conflicts),
		Unverifiable: summaries(report.Unverifiable),
	}, nil
}

// Suggest returns every window on dateText when it is given, otherwise the
// soonest day with availability within maxDays.
func (s *DefaultBookingService) Suggest(ctx context.Context, location, dateText string, maxDays int) (*models.SuggestionResponse, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrLocationRequired
	}

	var (
		existing  []models.Booking
		blackouts scheduling.BlackoutSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		existing, err = s.snapshot(gctx, location)
		return err
	})
	g.Go(func() error {
		var err error
		blackouts, err = s.blackoutSet(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	now := s.now()

	mode := "horizon"
	resp := &models.SuggestionResponse{Location: location, Suggestions: []models.Suggestion{}}
	var windows []scheduling.SuggestionWindow

	if dateText = strings.TrimSpace(dateText); dateText != "" {
		mode = "date"
		resp.Date = dateText
		if day, err := scheduling.ParseDate(dateText); err == nil {
			resp.Date = day.String()
		}
		windows = s.Engine.SuggestForDate(dateText, location, existing, blackouts, now)
	} else {
		result, ok := s.Engine.FindSoonest(location, maxDays, s.groupByDay(existing), blackouts, now)
		resp.DaysExamined = result.DaysExamined
		if ok {
			resp.Date = result.Date.String()
			windows = result.Suggestions
		}
	}

	for _, w := range windows {
		resp.Suggestions = append(resp.Suggestions, models.Suggestion{
			Date:  w.Date.String(),
			Time:  w.TimeRange(),
			Start: w.Start,
			End:   w.End,
			Label: w.String(),
		})
	}
	s.metrics().RecordSuggest(mode, len(resp.Suggestions) > 0)
	return resp, nil
}

func (s *DefaultBookingService) groupByDay(bookings []models.Booking) map[scheduling.CalendarDate][]models.Booking {
	byDay := make(map[scheduling.CalendarDate][]models.Booking)
	for _, b := range bookings {
		day, err := scheduling.ParseDate(b.Date)
		if err != nil {
			s.logger().Warn("skipping booking with unreadable date",
				zap.String("bookingID", b.ID), zap.String("date", b.Date), zap.Error(err))
			continue
		}
		byDay[day] = append(byDay[day], b)
	}
	return byDay
}

// CreateBooking stores an Applied booking once no active booking at the same
// venue overlaps it. The venue/day is locked for the duration and the overlap
// check is repeated inside the insert transaction.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.CreateBookingResponse, error) {
	start := time.Now()
	resp, err := s.createBooking(ctx, req)
	s.metrics().RecordCreate(createOutcome(err), time.Since(start))
	return resp, err
}

func (s *DefaultBookingService) createBooking(ctx context.Context, req models.BookingRequest) (*models.CreateBookingResponse, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, ErrLocationRequired
	}
	iv, err := scheduling.ParseInterval(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	blackouts, err := s.blackoutSet(ctx)
	if err != nil {
		return nil, err
	}
	if scheduling.IsBlackout(iv.Date, blackouts) {
		return nil, ErrBlackoutDate
	}

	key := scheduling.NormalizeLocation(location)
	release, err := s.Locker.Acquire(ctx, key+":"+iv.Date.Key(), s.LockTTL)
	if err != nil {
		if errors.Is(err, utils.ErrLockHeld) {
			return nil, ErrLockNotAcquired
		}
		return nil, fmt.Errorf("failed to lock %s on %s: %w", location, iv.Date, err)
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			s.logger().Warn("failed to release booking lock", zap.String("location", location), zap.Error(err))
		}
	}()

	now := s.now()
	startsAt := iv.StartTime(now.Location())
	endsAt := iv.EndTime(now.Location())
	booking := &models.Booking{
		ID:             uuid.New().String(),
		Title:          strings.TrimSpace(req.Title),
		OrganizationID: req.OrganizationID,
		Location:       location,
		LocationKey:    key,
		Date:           strings.TrimSpace(req.Date),
		DateKey:        iv.Date.Key(),
		TimeRange:      strings.TrimSpace(req.Time),
		Status:         models.StatusApplied,
		CreatedAt:      now,
		StartsAt:       &startsAt,
		EndsAt:         &endsAt,
	}

	proposed := scheduling.ProposedBooking{Location: location, Date: req.Date, TimeRange: req.Time}
	var report scheduling.ConflictReport
	err = s.Bookings.CreateIfNoConflict(ctx, booking, func(existing []models.Booking) error {
		r, err := s.Engine.FindConflicts(proposed, existing)
		if err != nil {
			return err
		}
		report = r
		if r.HasConflicts() {
			return &ConflictError{Conflicts: r.Conflicts}
		}
		return nil
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			s.logger().Info("booking rejected due to conflicts",
				zap.String("location", location), zap.String("date", booking.Date),
				zap.String("time", booking.TimeRange), zap.Int("conflicts", len(conflict.Conflicts)))
			return nil, err
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if len(report.Unverifiable) > 0 {
		s.logger().Warn("booking created alongside bookings that could not be verified",
			zap.String("bookingID", booking.ID), zap.Int("unverifiable", len(report.Unverifiable)))
	}
	s.logger().Info("booking created",
		zap.String("bookingID", booking.ID), zap.String("location", location),
		zap.String("date", booking.Date), zap.String("time", booking.TimeRange))

	return &models.CreateBookingResponse{
		Booking:      *booking,
		Unverifiable: summaries(report.Unverifiable),
	}, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	return booking, nil
}

// ListBookings returns bookings of any status, optionally narrowed to one
// venue and one day.
func (s *DefaultBookingService) ListBookings(ctx context.Context, location, dateText string) ([]models.Booking, error) {
	filter := models.BookingFilter{LocationKey: scheduling.NormalizeLocation(location)}
	if strings.TrimSpace(dateText) != "" {
		day, err := scheduling.ParseDate(dateText)
		if err != nil {
			return nil, err
		}
		filter.DateKey = day.Key()
	}
	bookings, err := s.Bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// SetStatus approves or rejects a booking that is still active.
func (s *DefaultBookingService) SetStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidStatus
	}
	current, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.IsActive() {
		return nil, &BookingError{
			Code:    "status_locked",
			Message: fmt.Sprintf("booking is already %s", current.Status),
		}
	}

	updated, err := s.Bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	s.logger().Info("booking status changed",
		zap.String("bookingID", id), zap.String("from", string(current.Status)), zap.String("to", string(status)))
	return updated, nil
}

// FinishPastBookings marks every active booking that has ended as Finished.
func (s *DefaultBookingService) FinishPastBookings(ctx context.Context) (int64, error) {
	return s.FinishBookingsEndedBy(ctx, s.now())
}

// FinishBookingsEndedBy marks active bookings ending at or before cutoff as Finished.
func (s *DefaultBookingService) FinishBookingsEndedBy(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.Bookings.MarkFinished(ctx, cutoff)
	s.metrics().RecordSweep(n, err)
	if err != nil {
		return 0, fmt.Errorf("failed to finish past bookings: %w", err)
	}
	return n, nil
}
