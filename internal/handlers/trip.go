package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/services"
)

// TripHandler handles trip-related requests
type TripHandler struct {
	trips *services.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(trips *services.TripService) *TripHandler {
	return &TripHandler{
		trips: trips,
	}
}

// CreateTrip records a trip with automatic earnings calculation
func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	var req models.TripRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	trip, err := h.trips.CreateTrip(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Trip recorded successfully",
		"trip":    trip,
	})
}

// GetTrip retrieves a single trip by ID
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Trip ID is required",
		})
	}

	trip, err := h.trips.GetTrip(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(trip)
}

// GetTrips lists trips with optional driver and date-range filters
func (h *TripHandler) GetTrips(c *fiber.Ctx) error {
	filter := &models.TripFilter{
		DriverID:  c.Query("driver_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	trips, err := h.trips.ListTrips(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"trips": trips,
		"count": len(trips),
	})
}

// DeleteTrip removes a trip. Settlements already created from it are
// not adjusted.
func (h *TripHandler) DeleteTrip(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Trip ID is required",
		})
	}

	if err := h.trips.DeleteTrip(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Trip deleted successfully",
	})
}
