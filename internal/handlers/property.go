package handlers

import (
	"strconv"

	"estates/internal/middleware"
	"estates/internal/models"
	"estates/internal/services/directory"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	directoryService directory.Service
}

func NewPropertyHandler(directoryService directory.Service) *PropertyHandler {
	return &PropertyHandler{directoryService: directoryService}
}

func (h *PropertyHandler) List(c *fiber.Ctx) error {
	page := utils.ParsePagination(c)

	ownerID, _ := strconv.Atoi(c.Query("owner_id", "0"))
	filter := directory.PropertyListFilter{
		Search:    c.Query("search"),
		City:      c.Query("city"),
		OwnerID:   uint(ownerID),
		OrderDesc: c.Query("order", "desc") == "desc",
		Offset:    page.Offset,
		Limit:     page.Limit,
	}

	views, total, err := h.directoryService.ListProperties(middleware.UserFromContext(c), filter)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"items":  views,
		"total":  total,
		"offset": page.Offset,
		"limit":  page.Limit,
	})
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var input struct {
		Name         string `json:"name"`
		Code         string `json:"code"`
		PropertyType string `json:"property_type"`
		AddressLine1 string `json:"address_line_1"`
		AddressLine2 string `json:"address_line_2"`
		City         string `json:"city"`
		Country      string `json:"country"`
		OwnerID      *uint  `json:"owner_id"`
		ManagerID    *uint  `json:"manager_id"`
		Notes        string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	property := &models.Property{
		Name:         input.Name,
		Code:         input.Code,
		PropertyType: input.PropertyType,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		Country:      input.Country,
		OwnerID:      input.OwnerID,
		ManagerID:    input.ManagerID,
		Notes:        input.Notes,
	}

	// Owners and managers creating a property take the matching role slot
	// unless they name someone else.
	if user := middleware.UserFromContext(c); user != nil {
		if user.Role == models.RoleOwner && property.OwnerID == nil {
			property.OwnerID = &user.ID
		}
		if user.Role == models.RoleManager && property.ManagerID == nil {
			property.ManagerID = &user.ID
		}
	}

	view, err := h.directoryService.CreateProperty(property)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, view)
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid property id")
	}

	view, err := h.directoryService.GetProperty(middleware.UserFromContext(c), uint(id))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, view)
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid property id")
	}

	var update models.PropertyUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	view, err := h.directoryService.UpdateProperty(middleware.UserFromContext(c), uint(id), update)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, view)
}

func (h *PropertyHandler) ListUnits(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid property id")
	}

	views, err := h.directoryService.ListPropertyUnits(middleware.UserFromContext(c), uint(id))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"items": views})
}
