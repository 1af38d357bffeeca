package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serendibgo/config"
	"serendibgo/cron"
	"serendibgo/database"
	bookingRepoPkg "serendibgo/database/repository/booking"
	tripRepoPkg "serendibgo/database/repository/trip"
	"serendibgo/handlers"
	"serendibgo/middleware"
	"serendibgo/routes"
	"serendibgo/services/booking"
	"serendibgo/services/notification"
	"serendibgo/services/payment"
	"serendibgo/services/trip"
	"serendibgo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	trips := tripRepoPkg.NewMongoTripRepo()
	bookings := bookingRepoPkg.NewMongoBookingRepo()

	// mail queue client and the worker that drains it.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
	defer asynqClient.Close()
	cron.InitMailWorker()

	// services.
	notificationService := notification.NewQueueNotificationService(asynqClient)

	tripService := &trip.DefaultTripService{
		Repo:            trips,
		NotificationSvc: notificationService,
		StaffInbox:      config.AppConfig.StaffEmail,
	}

	bookingService := booking.NewDefaultBookingService(bookings, trips)

	gateway := payment.NewStripeGateway(
		config.AppConfig.StripeKey,
		config.AppConfig.StripeWebhookSecret,
	)
	paymentService := payment.NewDefaultPaymentService(
		gateway, bookings, trips, notificationService, "lkr",
	)

	handlerBundle := handlers.NewHandlerBundle(tripService, bookingService, paymentService)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
