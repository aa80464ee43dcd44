package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// RequireAPIKey guards the API with a shared key. The real identity
// layer lives in front of this service; when API_KEY is unset the gate
// is open (local development).
func RequireAPIKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := os.Getenv("API_KEY")
		if key == "" {
			return c.Next()
		}

		if c.Get("X-API-Key") != key {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing API key",
			})
		}
		return c.Next()
	}
}
