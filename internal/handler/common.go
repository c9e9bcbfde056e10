package handler

import (
	"errors"

	"github.com/shopims/shopims-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getUserID reads the staff id set by the auth middleware.
func getUserID(c *fiber.Ctx) string {
	if v := c.Locals("user_id"); v != nil {
		return v.(string)
	}
	return "system"
}

func getUserUUID(c *fiber.Ctx) uuid.UUID {
	id, err := uuid.Parse(getUserID(c))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondErr maps service errors onto the HTTP taxonomy.
func respondErr(c *fiber.Ctx, err error) error {
	switch {
	case service.IsValidation(err), errors.Is(err, service.ErrDuplicateBarcode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserInactive):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}
