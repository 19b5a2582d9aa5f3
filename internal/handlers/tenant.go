package handlers

import (
	"time"

	"estates/internal/models"
	"estates/internal/repositories"
	"estates/internal/utils"
	"estates/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TenantHandler struct {
	tenantRepo repositories.TenantRepository
}

func NewTenantHandler(tenantRepo repositories.TenantRepository) *TenantHandler {
	return &TenantHandler{tenantRepo: tenantRepo}
}

func (h *TenantHandler) List(c *fiber.Ctx) error {
	page := utils.ParsePagination(c)

	tenants, total, err := h.tenantRepo.List(repositories.TenantFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Offset: page.Offset,
		Limit:  page.Limit,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	ids := make([]uint, len(tenants))
	for i := range tenants {
		ids[i] = tenants[i].ID
	}
	pendingDocs, err := h.tenantRepo.PendingDocumentCounts(ids)
	if err != nil {
		return utils.DomainError(c, err)
	}

	items := make([]fiber.Map, len(tenants))
	for i := range tenants {
		items[i] = fiber.Map{
			"tenant":            tenants[i],
			"pending_documents": pendingDocs[tenants[i].ID],
		}
	}

	return utils.Success(c, fiber.Map{
		"items":  items,
		"total":  total,
		"offset": page.Offset,
		"limit":  page.Limit,
	})
}

func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var input struct {
		FullName              string     `json:"full_name"`
		Email                 string     `json:"email"`
		Phone                 string     `json:"phone"`
		IDNumber              string     `json:"id_number"`
		DateOfBirth           *time.Time `json:"date_of_birth"`
		Gender                string     `json:"gender"`
		Occupation            string     `json:"occupation"`
		EmergencyContactName  string     `json:"emergency_contact_name"`
		EmergencyContactPhone string     `json:"emergency_contact_phone"`
		Notes                 string     `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Required("full_name", input.FullName)
	v.Required("phone", input.Phone)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	tenant := &models.Tenant{
		FullName:              input.FullName,
		Email:                 validation.NormalizeEmail(input.Email),
		Phone:                 input.Phone,
		IDNumber:              input.IDNumber,
		DateOfBirth:           input.DateOfBirth,
		Gender:                input.Gender,
		Occupation:            input.Occupation,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		Notes:                 input.Notes,
		KycStatus:             models.KycPending,
	}
	if err := h.tenantRepo.Create(tenant); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, tenant)
}

func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid tenant id")
	}

	tenant, err := h.tenantRepo.GetByID(uint(id))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, tenant)
}

func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid tenant id")
	}

	var update models.TenantUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	tenant, err := h.tenantRepo.GetByID(uint(id))
	if err != nil {
		return utils.DomainError(c, err)
	}

	if update.Email != nil {
		normalized := validation.NormalizeEmail(*update.Email)
		update.Email = &normalized
	}
	update.ApplyTo(tenant)

	if err := h.tenantRepo.Update(tenant); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, tenant)
}
