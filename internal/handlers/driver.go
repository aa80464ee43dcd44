package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
)

// DriverHandler handles driver-related requests
type DriverHandler struct {
	store storage.Store
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(store storage.Store) *DriverHandler {
	return &DriverHandler{
		store: store,
	}
}

// Register handles driver registration. This boundary validates the
// payment preference so an unknown value can never reach the calculator.
func (h *DriverHandler) Register(c *fiber.Ctx) error {
	var reg models.DriverRegistration

	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if reg.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}
	if reg.PaymentPreference != "" && !reg.PaymentPreference.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": `Payment preference must be "batta_only", "salary_only", or "split"`,
		})
	}

	driver, err := h.store.CreateDriver(&reg)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Driver registered successfully",
		"driver":  driver,
	})
}

// GetDriver retrieves driver by ID
func (h *DriverHandler) GetDriver(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Driver ID is required",
		})
	}

	driver, err := h.store.GetDriver(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(driver)
}

// GetDrivers retrieves all drivers
func (h *DriverHandler) GetDrivers(c *fiber.Ctx) error {
	drivers, err := h.store.GetAllDrivers()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"drivers": drivers,
		"count":   len(drivers),
	})
}

// UpdateDriver updates a driver's details and payment preference
func (h *DriverHandler) UpdateDriver(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Driver ID is required",
		})
	}

	var reg models.DriverRegistration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if reg.PaymentPreference != "" && !reg.PaymentPreference.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": `Payment preference must be "batta_only", "salary_only", or "split"`,
		})
	}

	driver, err := h.store.GetDriver(id)
	if err != nil {
		return respondError(c, err)
	}

	// A preference change only affects trips recorded after it; stored
	// trip earnings are never recomputed
	if reg.Name != "" {
		driver.Name = reg.Name
	}
	if reg.Phone != "" {
		driver.Phone = reg.Phone
	}
	if reg.VehicleNo != "" {
		driver.VehicleNo = reg.VehicleNo
	}
	if reg.PaymentPreference != "" {
		driver.PaymentPreference = reg.PaymentPreference
	}

	if err := h.store.UpdateDriver(driver); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Driver updated successfully",
		"driver":  driver,
	})
}

// DeleteDriver removes a driver
func (h *DriverHandler) DeleteDriver(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Driver ID is required",
		})
	}

	if err := h.store.DeleteDriver(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Driver deleted successfully",
	})
}
