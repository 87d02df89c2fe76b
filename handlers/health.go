package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/database"
	"github.com/willowgate/school-api/utils/response"
)

// HealthCheck reports liveness, including a database ping
func HealthCheck(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, response.CodeUpstreamError, "Database unreachable")
		}
		return response.Success(c, "OK", fiber.Map{"status": "healthy"})
	}
}
