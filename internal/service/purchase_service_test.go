package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/ws"
)

// fakeTxRunner runs the callback without a database so the stock arithmetic
// can be exercised against the fake repositories.
type fakeTxRunner struct{}

func (fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

// purchaseFixture seeds one product at 100 on hand and one stored purchase of
// 2 boxes x 5 packages x 10 items = 100 items.
func purchaseFixture() (*fakePurchaseRepo, *fakeProductRepo, PurchaseService, *model.Product, *model.Purchase) {
	product := &model.Product{Name: "Rice 5kg", QuantityInStock: 100}
	product.ID = uuid.New()

	purchase := &model.Purchase{
		SupplierID:      uuid.New(),
		ProductID:       product.ID,
		BoxQuantity:     2,
		PackagesPerBox:  5,
		ItemsPerPackage: 10,
		CostPerBox:      dec("50"),
		PurchaseDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	purchase.ID = uuid.New()

	purchaseRepo := &fakePurchaseRepo{byID: map[uuid.UUID]*model.Purchase{purchase.ID: purchase}}
	productRepo := &fakeProductRepo{byID: map[uuid.UUID]*model.Product{product.ID: product}}
	svc := NewPurchaseService(purchaseRepo, productRepo, fakeTxRunner{}, newTestHub())
	return purchaseRepo, productRepo, svc, product, purchase
}

func editRequest(p *model.Purchase) *model.Purchase {
	return &model.Purchase{
		SupplierID:      p.SupplierID,
		ProductID:       p.ProductID,
		BoxQuantity:     p.BoxQuantity,
		PackagesPerBox:  p.PackagesPerBox,
		ItemsPerPackage: p.ItemsPerPackage,
		CostPerBox:      p.CostPerBox,
		CostPerPackage:  p.CostPerPackage,
		CostPerItem:     p.CostPerItem,
		PurchaseDate:    p.PurchaseDate,
		ExpiryDate:      p.ExpiryDate,
	}
}

func TestRecordPurchaseAddsDerivedItems(t *testing.T) {
	purchaseRepo, productRepo, svc, product, _ := purchaseFixture()

	req := &model.Purchase{
		SupplierID:      uuid.New(),
		ProductID:       product.ID,
		BoxQuantity:     2,
		PackagesPerBox:  5,
		ItemsPerPackage: 10,
		CostPerBox:      dec("50"),
		PurchaseDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.RecordPurchase(req, uuid.New()))

	require.Len(t, purchaseRepo.created, 1)
	assert.True(t, req.TotalCost.Equal(dec("100")), "got %s", req.TotalCost)
	assert.True(t, req.CostPerItem.Equal(dec("1")), "got %s", req.CostPerItem)

	require.Len(t, productRepo.stockOps, 1)
	assert.Equal(t, stockOp{productID: product.ID, delta: 100}, productRepo.stockOps[0])
	assert.Equal(t, 200, product.QuantityInStock)
}

func TestUpdatePurchaseAppliesItemDelta(t *testing.T) {
	purchaseRepo, productRepo, svc, product, purchase := purchaseFixture()

	// 2 boxes -> 3 boxes: 150 items total, but only the 50 extra move stock.
	req := editRequest(purchase)
	req.BoxQuantity = 3

	updated, err := svc.UpdatePurchase(purchase.ID, req, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 150, updated.TotalItems())
	require.Len(t, purchaseRepo.saved, 1)
	require.Len(t, productRepo.stockOps, 1)
	assert.Equal(t, stockOp{productID: product.ID, delta: 50}, productRepo.stockOps[0])
	assert.Equal(t, 150, product.QuantityInStock)
}

func TestUpdatePurchaseUnchangedMovesNoStock(t *testing.T) {
	_, productRepo, svc, product, purchase := purchaseFixture()

	_, err := svc.UpdatePurchase(purchase.ID, editRequest(purchase), uuid.New())
	require.NoError(t, err)

	assert.Empty(t, productRepo.stockOps)
	assert.Equal(t, 100, product.QuantityInStock)
}

func TestUpdatePurchaseReassignsProduct(t *testing.T) {
	_, productRepo, svc, oldProduct, purchase := purchaseFixture()

	newProduct := &model.Product{Name: "Flour 2kg", QuantityInStock: 20}
	newProduct.ID = uuid.New()
	productRepo.byID[newProduct.ID] = newProduct

	req := editRequest(purchase)
	req.ProductID = newProduct.ID
	req.BoxQuantity = 3

	_, err := svc.UpdatePurchase(purchase.ID, req, uuid.New())
	require.NoError(t, err)

	// The old product gives back all 100 previous items; the new one takes
	// the full new count.
	require.Len(t, productRepo.stockOps, 2)
	assert.Equal(t, stockOp{productID: oldProduct.ID, delta: -100}, productRepo.stockOps[0])
	assert.Equal(t, stockOp{productID: newProduct.ID, delta: 150}, productRepo.stockOps[1])
	assert.Equal(t, 0, oldProduct.QuantityInStock)
	assert.Equal(t, 170, newProduct.QuantityInStock)
}

func TestUpdatePurchaseNotFound(t *testing.T) {
	_, _, svc, _, purchase := purchaseFixture()

	_, err := svc.UpdatePurchase(uuid.New(), editRequest(purchase), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
