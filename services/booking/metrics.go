package booking

import (
	"errors"
	"fmt"
	"time"

	"campusvenue/services/scheduling"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer captures booking workflow telemetry.
type Observer interface {
	RecordCreate(outcome string, duration time.Duration)
	RecordConflictCheck(conflicts, unverifiable int)
	RecordSuggest(mode string, found bool)
	RecordSweep(finished int64, err error)
}

type noopObserver struct{}

func (noopObserver) RecordCreate(string, time.Duration) {}
func (noopObserver) RecordConflictCheck(int, int)       {}
func (noopObserver) RecordSuggest(string, bool)         {}
func (noopObserver) RecordSweep(int64, error)           {}

// PrometheusObserver exports booking metrics to Prometheus.
type PrometheusObserver struct {
	createDuration *prometheus.HistogramVec
	conflicts      *prometheus.CounterVec
	suggestions    *prometheus.CounterVec
	finished       prometheus.Counter
	sweepErrors    prometheus.Counter
}

// NewPrometheusObserver registers the booking metrics on reg.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "campusvenue"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		createDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_create_duration_seconds",
			Help:      "Latency of booking creation by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conflict_check_bookings_total",
			Help:      "Existing bookings reported by conflict checks, by kind.",
		}, []string{"kind"}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_requests_total",
			Help:      "Suggestion requests by mode and whether any window was found.",
		}, []string{"mode", "found"}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_finished_total",
			Help:      "Bookings moved to Finished by the sweep.",
		}),
		sweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finish_sweep_errors_total",
			Help:      "Failed finish sweeps.",
		}),
	}
	collectors := []prometheus.Collector{o.createDuration, o.conflicts, o.suggestions, o.finished, o.sweepErrors}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register booking metric: %w", err)
		}
	}
	return o, nil
}

func (o *PrometheusObserver) RecordCreate(outcome string, duration time.Duration) {
	o.createDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (o *PrometheusObserver) RecordConflictCheck(conflicts, unverifiable int) {
	o.conflicts.WithLabelValues("conflict").Add(float64(conflicts))
	o.conflicts.WithLabelValues("unverifiable").Add(float64(unverifiable))
}

func (o *PrometheusObserver) RecordSuggest(mode string, found bool) {
	o.suggestions.WithLabelValues(mode, fmt.Sprint(found)).Inc()
}

func (o *PrometheusObserver) RecordSweep(finished int64, err error) {
	if err != nil {
		o.sweepErrors.Inc()
		return
	}
	o.finished.Add(float64(finished))
}

func createOutcome(err error) string {
	var (
		conflict *ConflictError
		bookErr  *BookingError
	)
	switch {
	case err == nil:
		return "created"
	case errors.As(err, &conflict):
		return "conflict"
	case errors.Is(err, ErrLockNotAcquired):
		return "locked"
	case errors.Is(err, ErrBlackoutDate):
		return "blackout"
	case scheduling.IsParseError(err), errors.As(err, &bookErr):
		return "invalid"
	default:
		return "error"
	}
}
