package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetpay/fleetpay-backend/internal/cache"
	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/services"
	"github.com/fleetpay/fleetpay-backend/internal/utils"
)

// EarningsHandler serves the live earnings summary for dashboards
type EarningsHandler struct {
	settlements *services.SettlementService
	summaries   *cache.SummaryCache
}

// NewEarningsHandler creates a new earnings handler
func NewEarningsHandler(settlements *services.SettlementService, summaries *cache.SummaryCache) *EarningsHandler {
	return &EarningsHandler{
		settlements: settlements,
		summaries:   summaries,
	}
}

// GetSummary returns period totals and unsettled amounts, optionally
// for a single driver
func (h *EarningsHandler) GetSummary(c *fiber.Ctx) error {
	period := c.Query("period", utils.PeriodWeekly)
	driverID := c.Query("driver_id")

	key := cache.Key(period, driverID)
	var cached models.EarningsSummary
	if h.summaries.Get(c.Context(), key, &cached) {
		return c.JSON(cached)
	}

	summary, err := h.settlements.EarningsSummary(period, driverID, time.Now())
	if err != nil {
		return respondError(c, err)
	}

	h.summaries.Set(c.Context(), key, summary)
	return c.JSON(summary)
}
