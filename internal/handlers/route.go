package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
)

// RouteHandler handles route (rate card) requests
type RouteHandler struct {
	store storage.Store
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(store storage.Store) *RouteHandler {
	return &RouteHandler{
		store: store,
	}
}

// CreateRoute handles creating a new route
func (h *RouteHandler) CreateRoute(c *fiber.Ctx) error {
	var reg models.RouteRegistration

	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if reg.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Route name is required",
		})
	}
	if reg.BattaPerTrip < 0 || reg.SalaryPerTrip < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Batta and salary per trip must be non-negative",
		})
	}

	route, err := h.store.CreateRoute(&reg)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Route created successfully",
		"route":   route,
	})
}

// GetRoute retrieves a single route by ID
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Route ID is required",
		})
	}

	route, err := h.store.GetRoute(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(route)
}

// GetRoutes retrieves all routes
func (h *RouteHandler) GetRoutes(c *fiber.Ctx) error {
	routes, err := h.store.GetAllRoutes()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"routes": routes,
		"count":  len(routes),
	})
}

// UpdateRoute updates a route's rate card. Trips recorded before the
// change keep their stored earnings.
func (h *RouteHandler) UpdateRoute(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Route ID is required",
		})
	}

	var reg models.RouteRegistration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if reg.BattaPerTrip < 0 || reg.SalaryPerTrip < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Batta and salary per trip must be non-negative",
		})
	}

	route, err := h.store.GetRoute(id)
	if err != nil {
		return respondError(c, err)
	}

	if reg.Name != "" {
		route.Name = reg.Name
	}
	if reg.Origin != "" {
		route.Origin = reg.Origin
	}
	if reg.Destination != "" {
		route.Destination = reg.Destination
	}
	route.BattaPerTrip = reg.BattaPerTrip
	route.SalaryPerTrip = reg.SalaryPerTrip

	if err := h.store.UpdateRoute(route); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Route updated successfully",
		"route":   route,
	})
}

// DeleteRoute removes a route
func (h *RouteHandler) DeleteRoute(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Route ID is required",
		})
	}

	if err := h.store.DeleteRoute(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Route deleted successfully",
	})
}
