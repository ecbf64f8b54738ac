package httpserver

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kmorten/usage_dashboard/backend/internal/app"
	"github.com/kmorten/usage_dashboard/backend/internal/auth"
	auditservice "github.com/kmorten/usage_dashboard/backend/internal/services/audit"
)

// Audit records cover the data API and the dashboard; health, metrics, and
// anything else stays out of the log.
var auditedPrefixes = []string{"/api", "/dashboard"}

const auditWriteTimeout = 5 * time.Second

// auditMiddleware emits one fire-and-forget record per handled request. The
// write happens off the request path and can never change the response;
// failures are logged and dropped.
func auditMiddleware(container *app.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		if container == nil || container.Audit == nil {
			return err
		}
		path := c.Path()
		if !auditedPath(path) {
			return err
		}

		rec := auditservice.Record{
			Method:     c.Method(),
			Path:       path,
			StatusCode: c.Response().StatusCode(),
			Duration:   time.Since(start),
			ClientHost: c.IP(),
		}
		if identity, ok := auth.IdentityFromContext(c.UserContext()); ok {
			rec.SubjectID = identity.SubjectID
			rec.DisplayName = identity.DisplayName
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			defer cancel()
			if writeErr := container.Audit.Write(ctx, rec); writeErr != nil {
				log.Printf("audit write failed for %s %s: %v", rec.Method, rec.Path, writeErr)
			}
		}()

		return err
	}
}

func auditedPath(path string) bool {
	for _, prefix := range auditedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
