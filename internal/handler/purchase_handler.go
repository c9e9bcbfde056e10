package handler

import (
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.ListPurchases()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(purchases)
}

func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	purchase, err := h.service.GetPurchase(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(purchase)
}

func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var purchase model.Purchase
	if err := c.BodyParser(&purchase); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RecordPurchase(&purchase, getUserUUID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": purchase})
}

func (h *PurchaseHandler) UpdatePurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	var purchase model.Purchase
	if err := c.BodyParser(&purchase); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdatePurchase(id, &purchase, getUserUUID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase updated", "data": updated})
}
