package routes

import (
	"time"

	"campusvenue/config"
	"campusvenue/handlers"
	"campusvenue/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterMetricsRoute exposes Prometheus metrics when a handler is configured.
func RegisterMetricsRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.MetricsHandler == nil {
		return
	}
	r.GET("/metrics", hb.MetricsHandler)
}

// RegisterVenueRoutes sets up availability lookups per venue.
func RegisterVenueRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	venues := api.Group("/venues")
	{
		venues.GET("/:location/suggestions", hb.SuggestionsHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking workflow.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("/conflicts", hb.CheckConflictsHandler)
		bookings.POST("", hb.CreateBookingHandler)
		bookings.GET("", hb.ListBookingsHandler)
		bookings.GET("/:id", hb.GetBookingHandler)
		bookings.PATCH("/:id/status", hb.UpdateStatusHandler)
	}
}

// RegisterBlackoutRoutes sets up campus-wide blackout date management.
func RegisterBlackoutRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	blackouts := api.Group("/blackouts")
	{
		blackouts.GET("", hb.ListBlackoutsHandler)
		blackouts.POST("", hb.AddBlackoutHandler)
		blackouts.DELETE("/:date", hb.RemoveBlackoutHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r, hb)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	RegisterVenueRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterBlackoutRoutes(api, hb)
}
