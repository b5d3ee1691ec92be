// File: fleetrent/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetrent/config"
	"fleetrent/cron"
	"fleetrent/database"
	bookingRepoPkg "fleetrent/database/repository/booking"
	userRepoPkg "fleetrent/database/repository/user"
	vehicleRepoPkg "fleetrent/database/repository/vehicle"
	"fleetrent/handlers"
	"fleetrent/middleware"
	"fleetrent/routes"
	"fleetrent/services/booking"
	"fleetrent/services/tasks"
	"fleetrent/services/user"
	"fleetrent/services/vehicle"
	"fleetrent/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	handlers.SetUserService(userService)

	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	bookingService := &booking.DefaultBookingService{
		Bookings:  bookingRepo,
		Vehicles:  vehicleRepo,
		Reminders: reminderScheduler,
	}

	vehicleService := &vehicle.DefaultVehicleService{
		Repo:     vehicleRepo,
		Bookings: bookingRepo,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// User endpoints.
		RegisterUserHandler:     handlers.RegisterUserHandler,
		AuthenticateUserHandler: handlers.AuthenticateUserHandler,
		GetUserByIDHandler:      handlers.GetUserByIDHandler,
		DeleteUserHandler:       handlers.DeleteUserHandler,

		// Vehicle endpoints.
		VehicleHandler: vehicleHandler,

		// Booking endpoints.
		BookingHandler: bookingHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background pickup-reminder worker and health monitor.
	cron.InitReminderWorker()
	utils.StartHealthMonitor([]*redis.Client{utils.GetAuthCacheClient()}, database.MongoClient)

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
