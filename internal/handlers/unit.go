package handlers

import (
	"estates/internal/middleware"
	"estates/internal/models"
	"estates/internal/services/directory"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UnitHandler struct {
	directoryService directory.Service
}

func NewUnitHandler(directoryService directory.Service) *UnitHandler {
	return &UnitHandler{directoryService: directoryService}
}

func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var input struct {
		PropertyID uint    `json:"property_id"`
		Name       string  `json:"name"`
		FloorLabel string  `json:"floor_label"`
		Bedrooms   int     `json:"bedrooms"`
		Bathrooms  int     `json:"bathrooms"`
		SquareFeet int     `json:"square_feet"`
		RentAmount float64 `json:"rent_amount"`
		Status     string  `json:"status"`
		Notes      string  `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	unit := &models.Unit{
		PropertyID: input.PropertyID,
		Name:       input.Name,
		FloorLabel: input.FloorLabel,
		Bedrooms:   input.Bedrooms,
		Bathrooms:  input.Bathrooms,
		SquareFeet: input.SquareFeet,
		RentAmount: input.RentAmount,
		Status:     input.Status,
		Notes:      input.Notes,
	}

	view, err := h.directoryService.CreateUnit(middleware.UserFromContext(c), unit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, view)
}

func (h *UnitHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid unit id")
	}

	var update models.UnitUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	view, err := h.directoryService.UpdateUnit(middleware.UserFromContext(c), uint(id), update)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, view)
}
