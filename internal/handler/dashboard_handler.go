package handler

import (
	"strconv"

	"go-kickcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the fleet totals and product count.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		return c.Status(503).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetCharts returns the four chart series in one payload.
// GET /api/v1/dashboard/charts
func (h *DashboardHandler) GetCharts(c *fiber.Ctx) error {
	charts, err := h.service.GetCharts()
	if err != nil {
		return c.Status(503).JSON(fiber.Map{"error": "Failed to fetch chart data"})
	}
	return c.JSON(charts)
}

// GetLowStock returns shoes below the stock threshold, lowest first.
// Query params: threshold (default 15)
// GET /api/v1/dashboard/low-stock
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	thresholdStr := c.Query("threshold", "15")
	threshold, err := strconv.Atoi(thresholdStr)
	if err != nil || threshold <= 0 {
		threshold = 15
	}

	shoes, err := h.service.GetLowStock(threshold)
	if err != nil {
		return c.Status(503).JSON(fiber.Map{"error": "Failed to fetch low stock shoes"})
	}

	return c.JSON(fiber.Map{
		"threshold": threshold,
		"data":      shoes,
	})
}

// GetTopShoes returns the best sellers by total sales.
// Query params: limit (default 8)
// GET /api/v1/dashboard/top-shoes
func (h *DashboardHandler) GetTopShoes(c *fiber.Ctx) error {
	limitStr := c.Query("limit", "8")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 8
	}

	shoes, err := h.service.GetTopShoes(limit)
	if err != nil {
		return c.Status(503).JSON(fiber.Map{"error": "Failed to fetch top shoes"})
	}

	return c.JSON(fiber.Map{
		"limit": limit,
		"data":  shoes,
	})
}
