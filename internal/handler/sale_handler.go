package handler

import (
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.ListSales()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSale(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sale)
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var sale model.Sale
	if err := c.BodyParser(&sale); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RecordSale(&sale, getUserUUID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}
