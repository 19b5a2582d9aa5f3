package handlers

import (
	"estates/internal/config"
	"estates/internal/models"
	"estates/internal/services/auth"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
	settings    *config.Settings
}

func NewAuthHandler(authService auth.Service, settings *config.Settings) *AuthHandler {
	return &AuthHandler{authService: authService, settings: settings}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.authService.Signup(input.Email, input.Password, input.Role)
	if err != nil {
		return utils.DomainError(c, err)
	}

	payload := fiber.Map{
		"user":              userJSON(result.User),
		"verification_sent": result.VerificationSent,
	}
	// Test and staging environments read the token off the response instead
	// of a mailbox.
	if h.settings.EmitDebugTokens && result.VerificationToken != nil {
		payload["debug_verification_token"] = result.VerificationToken.Token
	}
	return utils.Created(c, payload)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, token, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userJSON(user),
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, verifiedAt, err := h.authService.VerifyEmail(input.Token)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"verified":    true,
		"email":       user.Email,
		"verified_at": verifiedAt,
	})
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.authService.ResendVerification(input.Email)
	if err != nil {
		return utils.DomainError(c, err)
	}

	payload := fiber.Map{
		"verification_sent": result.VerificationSent,
		"already_verified":  result.AlreadyVerified,
	}
	if h.settings.EmitDebugTokens && result.VerificationToken != nil {
		payload["debug_verification_token"] = result.VerificationToken.Token
	}
	return utils.Success(c, payload)
}

// userJSON strips credentials from user responses.
func userJSON(user *models.User) fiber.Map {
	return fiber.Map{
		"id":     user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"active": user.Active,
	}
}
