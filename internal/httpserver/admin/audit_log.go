package admin

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kmorten/usage_dashboard/backend/internal/httpserver/httputil"
	auditservice "github.com/kmorten/usage_dashboard/backend/internal/services/audit"
)

type dashboardHandler struct {
	audit *auditservice.Service
}

// auditLog serves GET /dashboard/audit-log with limit/offset paging, newest
// entries first.
func (h *dashboardHandler) auditLog(c *fiber.Ctx) error {
	if h.audit == nil {
		return httputil.WriteError(c, fiber.StatusInternalServerError, "audit log unavailable")
	}

	limit, err := parsePagingParam(c.Query("limit"), 50)
	if err != nil {
		return httputil.WriteError(c, fiber.StatusUnprocessableEntity, "invalid limit")
	}
	offset, err := parsePagingParam(c.Query("offset"), 0)
	if err != nil {
		return httputil.WriteError(c, fiber.StatusUnprocessableEntity, "invalid offset")
	}

	entries, err := h.audit.List(c.Context(), limit, offset)
	if err != nil {
		log.Printf("list audit log failed: %v", err)
		return httputil.WriteError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{
		"logs":   entries,
		"limit":  limit,
		"offset": offset,
	})
}

func parsePagingParam(raw string, fallback int32) (int32, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil || parsed < 0 {
		return 0, strconv.ErrSyntax
	}
	return int32(parsed), nil
}
