package handlers

import (
	"errors"
	"net/http"

	"fleetrent/services/booking"
	"fleetrent/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

type bookingDatesInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type createBookingInput struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
}

// CheckAvailability handles GET /api/availability. Non-binding: the response
// reflects this instant and is never a commit guarantee.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	vehicleID := c.Query("vehicle_id")
	start := c.Query("start")
	end := c.Query("end")
	if vehicleID == "" || start == "" || end == "" {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Invalid input parameters."})
		return
	}

	result, err := h.Service.CheckAvailability(c.Request.Context(), vehicleID, start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Availability check failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": result.Available, "message": result.Message})
}

// CreateBooking handles POST /api/bookings. The acting user comes from the
// session token, never from the request body.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	userID := c.GetString("userID")
	b, err := h.Service.CreateBooking(c.Request.Context(), userID, input.VehicleID, input.Start, input.End)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// UpdateBooking handles PATCH /api/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var input bookingDatesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	actor := actorFromContext(c)
	b, err := h.Service.UpdateBooking(c.Request.Context(), actor, c.Param("id"), input.Start, input.End)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor := actorFromContext(c)
	if err := h.Service.CancelBooking(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully."})
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID := c.GetString("userID")
	bookings, err := h.Service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListAllBookings handles GET /api/admin/bookings.
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	bookings, err := h.Service.ListAllBookings(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// respondBookingError maps the service error taxonomy onto HTTP statuses.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var invalid *booking.InvalidRangeError
	var conflict *booking.ConflictError

	switch {
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusBadRequest, "Invalid date range", invalid.Reason)
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "Booking conflict", conflict.Error())
	case errors.Is(err, booking.ErrVehicleNotFound):
		utils.JSONError(c, http.StatusNotFound, "Vehicle not found", "")
	case errors.Is(err, booking.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	case errors.Is(err, booking.ErrUnauthorized):
		utils.JSONError(c, http.StatusForbidden, "Not authorized", "only the booking owner or an administrator may do this")
	default:
		h.Logger.Error("booking operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Booking operation failed", "Please try again later.")
	}
}

// actorFromContext builds the acting identity from values set by the auth
// middleware.
func actorFromContext(c *gin.Context) booking.Actor {
	return booking.Actor{
		ID:    c.GetString("userID"),
		Admin: c.GetBool("isAdmin"),
	}
}
