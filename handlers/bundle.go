package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc

	// Venue endpoints
	SuggestionsHandler gin.HandlerFunc

	// Booking endpoints
	CheckConflictsHandler gin.HandlerFunc
	CreateBookingHandler  gin.HandlerFunc
	GetBookingHandler     gin.HandlerFunc
	ListBookingsHandler   gin.HandlerFunc
	UpdateStatusHandler   gin.HandlerFunc

	// Blackout endpoints
	ListBlackoutsHandler  gin.HandlerFunc
	AddBlackoutHandler    gin.HandlerFunc
	RemoveBlackoutHandler gin.HandlerFunc
}

// NewHandlerBundle wires every endpoint of h into a bundle.
func NewHandlerBundle(h *BookingHandler) *HandlerBundle {
	return &HandlerBundle{
		HealthHandler:         HealthHandler,
		MetricsHandler:        MetricsHandler(prometheus.DefaultGatherer),
		SuggestionsHandler:    h.SuggestionsHandler,
		CheckConflictsHandler: h.CheckConflictsHandler,
		CreateBookingHandler:  h.CreateBookingHandler,
		GetBookingHandler:     h.GetBookingHandler,
		ListBookingsHandler:   h.ListBookingsHandler,
		UpdateStatusHandler:   h.UpdateStatusHandler,
		ListBlackoutsHandler:  h.ListBlackoutsHandler,
		AddBlackoutHandler:    h.AddBlackoutHandler,
		RemoveBlackoutHandler: h.RemoveBlackoutHandler,
	}
}
