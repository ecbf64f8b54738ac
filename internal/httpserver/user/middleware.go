package user

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kmorten/usage_dashboard/backend/internal/app"
	"github.com/kmorten/usage_dashboard/backend/internal/auth"
	"github.com/kmorten/usage_dashboard/backend/internal/httpserver/httputil"
	"github.com/kmorten/usage_dashboard/backend/internal/limits"
	"github.com/kmorten/usage_dashboard/backend/internal/rbac"
)

const bearerPrefix = "bearer "

// authMiddleware verifies the bearer credential and checks the data-API role
// set before any handler runs. Denied requests never reach the aggregator.
func authMiddleware(container *app.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearer(c)
		if token == "" {
			return httputil.WriteError(c, fiber.StatusUnauthorized, "authorization required")
		}

		identity, err := container.Tokens.Verify(token)
		if err != nil {
			return httputil.WriteError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		if err := rbac.Authorize(identity, rbac.DataAPIRoles); err != nil {
			return httputil.WriteError(c, fiber.StatusForbidden, "insufficient role")
		}

		attachIdentity(c, identity)
		return c.Next()
	}
}

// rateLimitMiddleware applies the per-subject request budget. Redis outages
// fail open; only a genuine limit hit turns into a 429.
func rateLimitMiddleware(container *app.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFromContext(c.UserContext())
		if !ok {
			return c.Next()
		}
		if err := container.RateLimiter.Allow(c.Context(), identity.SubjectID); err != nil {
			if errors.Is(err, limits.ErrLimitExceeded) {
				return httputil.WriteError(c, fiber.StatusTooManyRequests, "rate limit exceeded")
			}
			log.Printf("rate limiter unavailable, admitting request: %v", err)
		}
		return c.Next()
	}
}

func extractBearer(c *fiber.Ctx) string {
	raw := strings.TrimSpace(c.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(raw), bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(raw[len(bearerPrefix):])
}

func attachIdentity(c *fiber.Ctx, identity auth.Identity) {
	c.SetUserContext(auth.WithIdentity(requestContext(c), identity))
	c.Locals("subjectID", identity.SubjectID)
}

func requestContext(c *fiber.Ctx) context.Context {
	if c == nil {
		return context.Background()
	}
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}
