package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kmorten/usage_dashboard/backend/internal/app"
	"github.com/kmorten/usage_dashboard/backend/internal/auth"
	"github.com/kmorten/usage_dashboard/backend/internal/httpserver/httputil"
	"github.com/kmorten/usage_dashboard/backend/internal/rbac"
)

// Register wires the operations dashboard endpoints under /dashboard. Every
// route here requires the admin role.
func Register(router fiber.Router, container *app.Container) {
	if router == nil || container == nil {
		return
	}

	handler := &dashboardHandler{audit: container.Audit}

	group := router.Group("/dashboard", adminAuthMiddleware(container))
	group.Get("/audit-log", handler.auditLog)
}

const bearerPrefix = "bearer "

func adminAuthMiddleware(container *app.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get("Authorization"))
		token := ""
		if raw != "" && strings.HasPrefix(strings.ToLower(raw), bearerPrefix) {
			token = strings.TrimSpace(raw[len(bearerPrefix):])
		}
		if token == "" {
			return httputil.WriteError(c, fiber.StatusUnauthorized, "authorization required")
		}

		identity, err := container.Tokens.Verify(token)
		if err != nil {
			return httputil.WriteError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		if err := rbac.Authorize(identity, rbac.DashboardRoles); err != nil {
			return httputil.WriteError(c, fiber.StatusForbidden, "admin role required")
		}

		ctx := auth.WithIdentity(c.UserContext(), identity)
		c.SetUserContext(ctx)
		c.Locals("subjectID", identity.SubjectID)
		return c.Next()
	}
}
