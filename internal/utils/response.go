package utils

import (
	"errors"

	apperrors "estates/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a successful JSON response with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message})
}

// Conflict sends a JSON error response with status 409.
func Conflict(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusConflict, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// DomainError maps a service error onto the matching HTTP failure. Unknown
// errors surface as a generic 500.
func DomainError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return InternalError(c, "internal error")
	}

	switch de.Code {
	case apperrors.ErrUnauthenticated.Code:
		return Unauthorized(c, de.Message)
	case apperrors.ErrForbidden.Code:
		return Forbidden(c, de.Message)
	case apperrors.ErrNotFound.Code:
		return NotFound(c, de.Message)
	case apperrors.ErrConflict.Code:
		return Conflict(c, de.Message)
	case apperrors.ErrInvalid.Code:
		return BadRequest(c, de.Message)
	default:
		return InternalError(c, de.Message)
	}
}
