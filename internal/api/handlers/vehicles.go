package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealer-backend/internal/errs"
	"dealer-backend/internal/query"
	"dealer-backend/internal/services"
	"dealer-backend/pkg/utils"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// GetVehicles serves the browsing gallery: the filtered ordering plus facet
// options. All criteria arrive as query parameters and default to the
// unfiltered newest-first view.
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	criteria := query.Criteria{
		Term:      c.Query("term"),
		Make:      c.Query("make"),
		Fuel:      c.Query("fuel"),
		PriceBand: c.Query("price_band"),
		Sort:      c.Query("sort"),
	}

	result := h.vehicleService.Gallery(c.Request.Context(), criteria)
	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", result)
}

// SearchVehicles answers free-text lookups without facets.
func (h *VehicleHandler) SearchVehicles(c *gin.Context) {
	term := c.Query("q")
	vehicles := h.vehicleService.SearchVehicles(c.Request.Context(), term)
	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// GetVehicle serves a single listing by identifier.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), vehicleID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

// CreateVehicle inserts a new listing.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "Failed to create vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

// UpdateVehicle applies a partial update. Fields absent from the body are
// left alone; fields present but empty clear their column.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	var req services.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), vehicleID, &req)
	if err != nil {
		respondServiceError(c, "Failed to update vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle removes a listing. Its stored images are cleaned up in the
// background after the response goes out.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), vehicleID); err != nil {
		respondServiceError(c, "Failed to delete vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

// GetInventoryStats serves the admin dashboard aggregates.
func (h *VehicleHandler) GetInventoryStats(c *gin.Context) {
	stats := h.vehicleService.GetInventoryStats(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "Inventory stats retrieved successfully", stats)
}

// respondServiceError maps a service failure onto the right status code:
// shaping violations are the caller's fault, a missing record is 404, and a
// store rejection is a gateway failure whose diagnostic is passed through.
func respondServiceError(c *gin.Context, message string, err error) {
	if errs.IsValidation(err) {
		utils.ErrorResponse(c, http.StatusBadRequest, message, err)
		return
	}

	if errs.IsNotFound(err) {
		utils.ErrorResponse(c, http.StatusNotFound, message, err)
		return
	}

	utils.ErrorResponse(c, http.StatusBadGateway, message, err)
}
