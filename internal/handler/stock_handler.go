package handler

import (
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) GetAdjustments(c *fiber.Ctx) error {
	adjustments, err := h.service.ListAdjustments()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(adjustments)
}

func (h *StockHandler) CreateAdjustment(c *fiber.Ctx) error {
	var adjustment model.StockAdjustment
	if err := c.BodyParser(&adjustment); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RecordAdjustment(&adjustment, getUserUUID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock adjusted", "data": adjustment})
}
