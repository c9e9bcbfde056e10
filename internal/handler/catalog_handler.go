package handler

import (
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GetProducts returns the read-only product listing.
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	listings, err := h.service.ListProducts()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(listings)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product, getUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"id": product.ID, "message": "Product created"})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(id, &product, getUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *CatalogHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(suppliers)
}

func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateSupplier(&supplier, getUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"id": supplier.ID, "message": "Supplier created"})
}

func (h *CatalogHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.ListCustomers()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(customers)
}

func (h *CatalogHandler) CreateCustomer(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateCustomer(&customer, getUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"id": customer.ID, "message": "Customer created"})
}
