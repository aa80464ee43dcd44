package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/services"
)

// SettlementHandler handles settlement-related requests
type SettlementHandler struct {
	settlements *services.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlements *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlements: settlements,
	}
}

// CreateSettlement creates a pending settlement for a driver, bucket
// and period
func (h *SettlementHandler) CreateSettlement(c *fiber.Ctx) error {
	var req models.SettlementRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	settlement, err := h.settlements.CreateSettlement(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Settlement created successfully",
		"settlement": settlement,
	})
}

// GetSettlement retrieves a single settlement by ID
func (h *SettlementHandler) GetSettlement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Settlement ID is required",
		})
	}

	settlement, err := h.settlements.GetSettlement(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(settlement)
}

// GetSettlements lists settlements with optional filters, each enriched
// with the trips of its period
func (h *SettlementHandler) GetSettlements(c *fiber.Ctx) error {
	filter := &models.SettlementFilter{
		DriverID: c.Query("driver_id"),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
	}

	settlements, err := h.settlements.ListSettlements(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"settlements": settlements,
		"count":       len(settlements),
	})
}

// MarkPaid transitions a settlement to paid and stamps settled_at
func (h *SettlementHandler) MarkPaid(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Settlement ID is required",
		})
	}

	settlement, err := h.settlements.MarkPaid(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Settlement marked as paid",
		"settlement": settlement,
	})
}

// UpdateSettlement changes a settlement's status and/or notes
func (h *SettlementHandler) UpdateSettlement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Settlement ID is required",
		})
	}

	var update services.SettlementUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if update.Status == nil && update.Notes == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nothing to update: provide status and/or notes",
		})
	}

	settlement, err := h.settlements.UpdateSettlement(id, &update)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Settlement updated successfully",
		"settlement": settlement,
	})
}

// DeleteSettlement removes a pending settlement; paid ones are protected
func (h *SettlementHandler) DeleteSettlement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Settlement ID is required",
		})
	}

	if err := h.settlements.DeleteSettlement(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Settlement deleted successfully",
	})
}
