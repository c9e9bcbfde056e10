package handler

import (
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShareHandler struct {
	service service.ShareService
}

func NewShareHandler(s service.ShareService) *ShareHandler {
	return &ShareHandler{service: s}
}

func (h *ShareHandler) GetShares(c *fiber.Ctx) error {
	shares, err := h.service.ListShares()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(shares)
}

func (h *ShareHandler) CreateShare(c *fiber.Ctx) error {
	var share model.Share
	if err := c.BodyParser(&share); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateShare(&share, getUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"id": share.ID, "message": "Share created"})
}
