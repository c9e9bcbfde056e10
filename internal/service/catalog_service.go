package service

import (
	"errors"

	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/repository"
	"github.com/shopims/shopims-backend/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService covers the product/supplier/customer reference data the
// purchase and sale flows hang off.
type CatalogService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	ListProducts() ([]model.ProductListing, error)
	GetProduct(id uuid.UUID) (*model.Product, error)

	CreateSupplier(req *model.Supplier, userID string) error
	ListSuppliers() ([]model.Supplier, error)

	CreateCustomer(req *model.Customer, userID string) error
	ListCustomers() ([]model.Customer, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
	wsHub        *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	customerRepo repository.CustomerRepository,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	if existing, _ := s.productRepo.FindByBarcode(req.Barcode); existing != nil && existing.ID != uuid.Nil {
		return ErrDuplicateBarcode
	}

	if _, err := s.supplierRepo.FindByID(req.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.wsHub.Notify("product_created", req.ToListing())
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Barcode = req.Barcode
	existing.Category = req.Category
	existing.PurchasePrice = req.PurchasePrice
	existing.SellingPrice = req.SellingPrice
	existing.MinStockLevel = req.MinStockLevel
	existing.SupplierID = req.SupplierID
	existing.UpdatedBy = userID

	if err := validateStruct(existing); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.wsHub.Notify("product_updated", existing.ToListing())
	return existing, nil
}

func (s *catalogService) ListProducts() ([]model.ProductListing, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	listings := make([]model.ProductListing, len(products))
	for i := range products {
		listings[i] = products[i].ToListing()
	}
	return listings, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) CreateSupplier(req *model.Supplier, userID string) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.supplierRepo.Create(req)
}

func (s *catalogService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *catalogService) CreateCustomer(req *model.Customer, userID string) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.customerRepo.Create(req)
}

func (s *catalogService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}
