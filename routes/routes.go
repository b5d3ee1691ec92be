package routes

import (
	"net/http"
	"time"

	"fleetrent/handlers"
	"fleetrent/middleware"
	"fleetrent/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/id/:id", hb.GetUserByIDHandler)
		api.DELETE("/:id", hb.DeleteUserHandler)
	}
}

// RegisterVehicleRoutes registers fleet endpoints. Reads need a session;
// mutations need an administrator.
func RegisterVehicleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vehicles")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.VehicleHandler.ListVehicles)
		api.GET("/search", hb.VehicleHandler.SearchVehicles)
		api.GET("/:id", hb.VehicleHandler.GetVehicle)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("", hb.VehicleHandler.CreateVehicle)
		admin.PUT("/:id", hb.VehicleHandler.UpdateVehicle)
		admin.DELETE("/:id", hb.VehicleHandler.DeleteVehicle)
	}
}

// RegisterBookingRoutes sets up the reservation endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	availability := r.Group("/api/availability")
	{
		availability.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		availability.GET("", hb.BookingHandler.CheckAvailability)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		bookings.GET("", hb.BookingHandler.ListMyBookings)
		bookings.POST("", hb.BookingHandler.CreateBooking)
		bookings.PATCH("/:id", hb.BookingHandler.UpdateBooking)
		bookings.DELETE("/:id", hb.BookingHandler.CancelBooking)
	}
}

// RegisterAdminRoutes sets up endpoints for admin reporting.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.RequireAdmin())
		adminGroup.GET("/bookings", hb.BookingHandler.ListAllBookings)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterVehicleRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
