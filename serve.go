package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusvenue/config"
	"campusvenue/cron"
	"campusvenue/database"
	blackoutRepo "campusvenue/database/repository/blackout"
	bookingRepo "campusvenue/database/repository/booking"
	"campusvenue/handlers"
	"campusvenue/middleware"
	"campusvenue/routes"
	"campusvenue/services/booking"
	"campusvenue/services/scheduling"
	"campusvenue/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the booking API and the finish sweep worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func runServe() {
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cacheClient := utils.GetCacheClient()
	lockClient := utils.GetLockClient()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, time.Minute, []*redis.Client{cacheClient, lockClient}, database.MongoClient)

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	blackouts := blackoutRepo.NewMongoBlackoutRepo()
	if err := bookings.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to create booking indexes", zap.Error(err))
	}
	if err := blackouts.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to create blackout indexes", zap.Error(err))
	}

	// services.
	engine := &scheduling.DefaultSchedulingEngine{
		Logger:          logger.Named("scheduling"),
		OpeningMinute:   config.AppConfig.OpeningHour * 60,
		ClosingMinute:   config.AppConfig.ClosingHour * 60,
		SuggestionLimit: config.AppConfig.SuggestionLimit,
		HorizonDays:     config.AppConfig.HorizonDays,
	}
	observer, err := booking.NewPrometheusObserver("campusvenue", prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("main: failed to register metrics", zap.Error(err))
	}
	bookingService := booking.NewBookingService(
		bookings,
		blackouts,
		engine,
		utils.NewRedisLocker(lockClient),
		booking.NewRedisBlackoutCache(cacheClient, config.AppConfig.BlackoutCacheTTL),
		config.AppConfig.BookingLockTTL,
		logger.Named("booking"),
	)
	bookingService.Metrics = observer

	worker, err := cron.StartFinishSweepWorker(bookingService, logger.Named("sweep"))
	if err != nil {
		logger.Fatal("main: failed to start finish sweep", zap.Error(err))
	}
	// Catch up on bookings that ended while the service was down.
	if id, err := worker.EnqueueSweep(rootCtx, time.Now()); err != nil {
		logger.Warn("main: startup sweep not queued", zap.Error(err))
	} else {
		logger.Info("main: startup sweep queued", zap.String("taskID", id))
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger.Named("http")))

	bookingHandler := handlers.NewBookingHandler(bookingService, logger.Named("handlers"))
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(bookingHandler))

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	stop()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	_ = cacheClient.Close()
	_ = lockClient.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
