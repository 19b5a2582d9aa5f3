package handlers

import (
	"estates/internal/middleware"
	"estates/internal/models"
	"estates/internal/services/billing"
	"estates/internal/services/directory"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaseHandler struct {
	directoryService directory.Service
	billingService   billing.Service
}

func NewLeaseHandler(directoryService directory.Service, billingService billing.Service) *LeaseHandler {
	return &LeaseHandler{directoryService: directoryService, billingService: billingService}
}

func (h *LeaseHandler) List(c *fiber.Ctx) error {
	page := utils.ParsePagination(c)

	leases, err := h.directoryService.ListLeases(page.Limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"items": leases})
}

func (h *LeaseHandler) Create(c *fiber.Ctx) error {
	var input struct {
		UnitID        uint    `json:"unit_id"`
		TenantID      uint    `json:"tenant_id"`
		StartDate     string  `json:"start_date"`
		EndDate       string  `json:"end_date"`
		RentAmount    float64 `json:"rent_amount"`
		DepositAmount float64 `json:"deposit_amount"`
		PaymentDay    int     `json:"payment_day"`
		Status        string  `json:"status"`
		Notes         string  `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return utils.BadRequest(c, "start_date must be a valid date")
	}
	endDate, err := parseOptionalDate(input.EndDate)
	if err != nil {
		return utils.BadRequest(c, "end_date must be a valid date")
	}

	lease := &models.Lease{
		UnitID:        input.UnitID,
		TenantID:      input.TenantID,
		StartDate:     startDate,
		EndDate:       endDate,
		RentAmount:    input.RentAmount,
		DepositAmount: input.DepositAmount,
		PaymentDay:    input.PaymentDay,
		Status:        input.Status,
		Notes:         input.Notes,
	}
	if err := h.directoryService.CreateLease(lease); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, lease)
}

func (h *LeaseHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid lease id")
	}

	lease, err := h.directoryService.GetLease(uint(id))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, lease)
}

func (h *LeaseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid lease id")
	}

	var update models.LeaseUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	lease, err := h.directoryService.UpdateLease(uint(id), update)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, lease)
}

func (h *LeaseHandler) CreateInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid lease id")
	}

	var input struct {
		PeriodStart string  `json:"period_start"`
		PeriodEnd   string  `json:"period_end"`
		DueDate     string  `json:"due_date"`
		AmountDue   float64 `json:"amount_due"`
		Notes       string  `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	periodStart, err := parseDate(input.PeriodStart)
	if err != nil {
		return utils.BadRequest(c, "period_start must be a valid date")
	}
	periodEnd, err := parseDate(input.PeriodEnd)
	if err != nil {
		return utils.BadRequest(c, "period_end must be a valid date")
	}
	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return utils.BadRequest(c, "due_date must be a valid date")
	}

	invoice, err := h.billingService.CreateInvoice(uint(id), billing.InvoiceInput{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		DueDate:     dueDate,
		AmountDue:   input.AmountDue,
		Notes:       input.Notes,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, invoice)
}

func (h *LeaseHandler) RecordPayment(c *fiber.Ctx) error {
	var input struct {
		InvoiceID uint    `json:"invoice_id"`
		Amount    float64 `json:"amount"`
		PaidOn    string  `json:"paid_on"`
		Method    string  `json:"method"`
		Reference string  `json:"reference"`
		Notes     string  `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	paidOn, err := parseOptionalDate(input.PaidOn)
	if err != nil {
		return utils.BadRequest(c, "paid_on must be a valid date")
	}

	payment := billing.PaymentInput{
		InvoiceID: input.InvoiceID,
		Amount:    input.Amount,
		Method:    input.Method,
		Reference: input.Reference,
		Notes:     input.Notes,
	}
	if paidOn != nil {
		payment.PaidOn = *paidOn
	}
	if user := middleware.UserFromContext(c); user != nil {
		payment.ReceivedByID = &user.ID
	}

	record, invoice, err := h.billingService.RecordPayment(payment)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, fiber.Map{
		"payment": record,
		"invoice": invoice,
	})
}
