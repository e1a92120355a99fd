package middleware

import (
	"elearn/config"

	"github.com/gofiber/fiber/v2"
)

// MaintenanceGate rejects requests while the platform maintenance flag is on.
// Settings come through the TTL cache, not a per-request query.
func MaintenanceGate(settings *config.SettingsCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if settings.Get().AppMaintenance {
			return JsonResponse(c, fiber.StatusServiceUnavailable, false, "Platform is under maintenance. Please try again later.", nil)
		}
		return c.Next()
	}
}
