package handlers

import (
	"estates/internal/models"
	"estates/internal/services/maintenance"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MaintenanceHandler struct {
	maintService maintenance.Service
}

func NewMaintenanceHandler(maintService maintenance.Service) *MaintenanceHandler {
	return &MaintenanceHandler{maintService: maintService}
}

func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	page := utils.ParsePagination(c)

	views, err := h.maintService.List(page.Limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"items": views})
}

func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var input struct {
		PropertyID  uint   `json:"property_id"`
		UnitID      *uint  `json:"unit_id"`
		TenantID    *uint  `json:"tenant_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		ReportedOn  string `json:"reported_on"`
		Notes       string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	reportedOn, err := parseOptionalDate(input.ReportedOn)
	if err != nil {
		return utils.BadRequest(c, "reported_on must be a valid date")
	}

	record := &models.MaintenanceRequest{
		PropertyID:  input.PropertyID,
		UnitID:      input.UnitID,
		TenantID:    input.TenantID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Notes:       input.Notes,
	}
	if reportedOn != nil {
		record.ReportedOn = *reportedOn
	}

	view, err := h.maintService.Create(record)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, view)
}

func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid maintenance id")
	}

	var update models.MaintenanceUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	view, err := h.maintService.Update(uint(id), update)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, view)
}
