package handlers

import (
	"errors"
	"net/http"

	"fleetrent/services/vehicle"
	"fleetrent/utils"

	"github.com/gin-gonic/gin"
)

// VehicleHandler exposes the fleet endpoints.
type VehicleHandler struct {
	Service vehicle.VehicleService
}

// NewVehicleHandler creates a VehicleHandler.
func NewVehicleHandler(svc vehicle.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

// ListVehicles handles GET /api/vehicles: the fleet with today's rental status.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.Service.ListVehicles(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list vehicles", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// SearchVehicles handles GET /api/vehicles/search?q=.
func (h *VehicleHandler) SearchVehicles(c *gin.Context) {
	vehicles, err := h.Service.SearchVehicles(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// GetVehicle handles GET /api/vehicles/:id.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	v, err := h.Service.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondVehicleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": v})
}

// CreateVehicle handles POST /api/vehicles (admin).
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var input vehicle.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	v, err := h.Service.CreateVehicle(c.Request.Context(), input)
	if err != nil {
		h.respondVehicleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": v})
}

// UpdateVehicle handles PUT /api/vehicles/:id (admin).
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var input vehicle.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	v, err := h.Service.UpdateVehicle(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.respondVehicleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": v})
}

// DeleteVehicle handles DELETE /api/vehicles/:id (admin). Removing a vehicle
// takes all of its bookings with it.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.Service.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		h.respondVehicleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully."})
}

func (h *VehicleHandler) respondVehicleError(c *gin.Context, err error) {
	var input *vehicle.InputError
	switch {
	case errors.As(err, &input):
		utils.JSONError(c, http.StatusBadRequest, "Invalid vehicle input", input.Reason)
	case errors.Is(err, vehicle.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Vehicle not found", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Vehicle operation failed", err.Error())
	}
}
