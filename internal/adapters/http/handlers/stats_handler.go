package handlers

import (
	"uni-egresados/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles dashboard statistics endpoints
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles the dashboard counters
// @Summary Dashboard statistics
// @Description Aggregate counts: graduates, currently employed, active surveys, upcoming events. Always 200; zeroed payload on failure.
// @Tags Stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.StatsData
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	// Failures are swallowed by the service; this endpoint never errors
	return c.JSON(h.statsService.GetStats(c.Context()))
}
