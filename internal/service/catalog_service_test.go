package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopims/shopims-backend/internal/model"
)

type fakeSupplierRepo struct{}

func (f *fakeSupplierRepo) Create(s *model.Supplier) error     { return nil }
func (f *fakeSupplierRepo) FindAll() ([]model.Supplier, error) { return nil, nil }
func (f *fakeSupplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSupplierRepo) Update(s *model.Supplier) error { return nil }

type fakeCustomerRepo struct{}

func (f *fakeCustomerRepo) Create(c *model.Customer) error     { return nil }
func (f *fakeCustomerRepo) FindAll() ([]model.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestListProductsFlagsLowStock(t *testing.T) {
	low := model.Product{Name: "Salt 500g", QuantityInStock: 3, MinStockLevel: 5}
	low.ID = uuid.New()
	ok := model.Product{Name: "Rice 5kg", QuantityInStock: 40, MinStockLevel: 5}
	ok.ID = uuid.New()

	productRepo := &fakeProductRepo{products: []model.Product{low, ok}}
	svc := NewCatalogService(productRepo, &fakeSupplierRepo{}, &fakeCustomerRepo{}, newTestHub())

	listings, err := svc.ListProducts()
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.True(t, listings[0].LowStock)
	assert.False(t, listings[1].LowStock)
}
