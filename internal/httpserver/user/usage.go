package user

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kmorten/usage_dashboard/backend/internal/auth"
	"github.com/kmorten/usage_dashboard/backend/internal/httpserver/httputil"
	usageservice "github.com/kmorten/usage_dashboard/backend/internal/services/usage"
	"github.com/kmorten/usage_dashboard/backend/internal/timeutil"
)

type usageHandler struct {
	usage *usageservice.Service
}

// tokenUsage serves GET /api/token-usage. Dates are YYYY-MM-DD and both
// required; the timeframe defaults to daily. The query scope is always the
// verified caller's subject id — a client-supplied user_id parameter is
// ignored unconditionally.
func (h *usageHandler) tokenUsage(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return httputil.WriteError(c, fiber.StatusUnauthorized, "authentication required")
	}

	start, err := timeutil.ParseDate(c.Query("start_date"))
	if err != nil {
		return httputil.WriteError(c, fiber.StatusUnprocessableEntity, "invalid start_date")
	}
	end, err := timeutil.ParseDate(c.Query("end_date"))
	if err != nil {
		return httputil.WriteError(c, fiber.StatusUnprocessableEntity, "invalid end_date")
	}
	dateRange, err := timeutil.NewRange(start, timeutil.EndOfDay(end, time.UTC))
	if err != nil {
		return httputil.WriteError(c, fiber.StatusUnprocessableEntity, "start_date must not be after end_date")
	}
	granularity, err := usageservice.ParseGranularity(c.Query("timeframe"))
	if err != nil {
		return httputil.WriteError(c, fiber.StatusUnprocessableEntity, "invalid timeframe")
	}

	result, err := h.usage.Aggregate(c.Context(), usageservice.Request{
		UserID:      identity.SubjectID,
		Range:       dateRange,
		Granularity: granularity,
	})
	if err != nil {
		log.Printf("token usage aggregation for %s failed: %v", identity.SubjectID, err)
		return httputil.WriteError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(result)
}
