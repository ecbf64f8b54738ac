package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kmorten/usage_dashboard/backend/internal/app"
)

// Register wires the authenticated data API under /api.
func Register(router fiber.Router, container *app.Container) {
	if router == nil || container == nil {
		return
	}

	handler := &usageHandler{usage: container.Usage}

	group := router.Group("/api", authMiddleware(container), rateLimitMiddleware(container))
	group.Get("/token-usage", handler.tokenUsage)
}
