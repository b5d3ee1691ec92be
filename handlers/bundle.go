package handlers

import (
	userRepo "fleetrent/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups everything the routes package needs to wire endpoints.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	// User endpoints.
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetUserByIDHandler      gin.HandlerFunc
	DeleteUserHandler       gin.HandlerFunc

	// Vehicle endpoints.
	VehicleHandler *VehicleHandler

	// Booking endpoints.
	BookingHandler *BookingHandler
}
