package handlers

import (
	"estates/internal/services/dashboard"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.Summary(c.Context())
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, summary)
}
