package handlers

import (
	"estates/internal/middleware"
	"estates/internal/services/kyc"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type KycHandler struct {
	kycService kyc.Service
}

func NewKycHandler(kycService kyc.Service) *KycHandler {
	return &KycHandler{kycService: kycService}
}

func (h *KycHandler) Invite(c *fiber.Ctx) error {
	var input struct {
		TenantID    uint   `json:"tenant_id"`
		Email       string `json:"email"`
		ExpiryHours int    `json:"expiry_hours"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	invite, err := h.kycService.Invite(input.TenantID, input.Email, input.ExpiryHours, middleware.UserFromContext(c))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, fiber.Map{
		"tenant_id":  invite.TenantID,
		"email":      invite.Email,
		"token":      invite.Token,
		"expires_at": invite.ExpiresAt,
	})
}

func (h *KycHandler) OpenSession(c *fiber.Ctx) error {
	var input struct {
		TenantID    uint `json:"tenant_id"`
		ExpiryHours int  `json:"expiry_hours"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.kycService.OpenSession(input.TenantID, input.ExpiryHours)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, fiber.Map{
		"tenant_id":  result.Session.TenantID,
		"token":      result.Session.Token,
		"status":     result.Session.Status,
		"expires_at": result.Session.ExpiresAt,
		"verify_url": result.VerifyURL,
	})
}

func (h *KycHandler) SubmitDocument(c *fiber.Ctx) error {
	var input struct {
		TenantID   uint   `json:"tenant_id"`
		DocType    string `json:"doc_type"`
		FileURL    string `json:"file_url"`
		ScoreValue int    `json:"score_value"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	tenant, doc, err := h.kycService.SubmitDocument(input.TenantID, input.DocType, input.FileURL, input.ScoreValue)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, fiber.Map{
		"document":   doc,
		"kyc_status": tenant.KycStatus,
		"kyc_score":  tenant.KycScore,
	})
}

func (h *KycHandler) RecordDecision(c *fiber.Ctx) error {
	var input struct {
		TenantID uint   `json:"tenant_id"`
		Status   string `json:"status"`
		Reason   string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	tenant, err := h.kycService.RecordDecision(input.TenantID, input.Status, input.Reason, middleware.UserFromContext(c))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, tenant)
}
