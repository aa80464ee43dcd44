package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
)

// respondError maps the core error taxonomy onto HTTP statuses
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var businessErr *apperrors.BusinessRuleError
	var preferenceErr *apperrors.UnknownPaymentPreferenceError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Message,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFoundErr.Error(),
		})
	case errors.As(err, &businessErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": businessErr.Message,
		})
	case errors.As(err, &preferenceErr):
		// Data integrity failure, should be unreachable for validated drivers
		log.Printf("FATAL: %v", preferenceErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": preferenceErr.Error(),
		})
	default:
		log.Printf("unexpected error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
