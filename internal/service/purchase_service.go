package service

import (
	"errors"

	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/repository"
	"github.com/shopims/shopims-backend/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseService interface {
	RecordPurchase(req *model.Purchase, userID uuid.UUID) error
	UpdatePurchase(id uuid.UUID, req *model.Purchase, userID uuid.UUID) (*model.Purchase, error)
	ListPurchases() ([]model.Purchase, error)
	GetPurchase(id uuid.UUID) (*model.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	db           txRunner
	wsHub        *ws.Hub
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	db txRunner,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		db:           db,
		wsHub:        hub,
	}
}

// RecordPurchase resolves the cost hierarchy, persists the purchase and adds
// the derived item count to the product's stock, all in one transaction.
func (s *purchaseService) RecordPurchase(req *model.Purchase, userID uuid.UUID) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	req.ApplyBreakdown(req.Breakdown().Resolve())

	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockByID(tx, req.ProductID)
		if err != nil {
			return ErrNotFound
		}

		uid := userID.String()
		req.CreatedBy = uid
		req.UpdatedBy = uid
		req.ReceivedByUserID = &userID
		if err := s.purchaseRepo.Create(tx, req); err != nil {
			return err
		}

		delta := req.TotalItems()
		if err := s.productRepo.AddStock(tx, product.ID, delta, uid); err != nil {
			return err
		}

		s.wsHub.Notify("stock_update", map[string]interface{}{
			"action":     "purchase_recorded",
			"product_id": product.ID,
			"barcode":    product.Barcode,
			"delta":      delta,
			"new_stock":  product.QuantityInStock + delta,
		})
		return nil
	})
	return err
}

// UpdatePurchase edits an existing purchase. Stock is moved by the difference
// between the new and previously recorded item counts, so repeated edits never
// double-apply.
func (s *purchaseService) UpdatePurchase(id uuid.UUID, req *model.Purchase, userID uuid.UUID) (*model.Purchase, error) {
	var updated *model.Purchase

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.purchaseRepo.LockByID(tx, id)
		if err != nil {
			return ErrNotFound
		}
		previousItems := existing.TotalItems()
		previousProductID := existing.ProductID

		existing.SupplierID = req.SupplierID
		existing.ProductID = req.ProductID
		existing.BoxQuantity = req.BoxQuantity
		existing.PackagesPerBox = req.PackagesPerBox
		existing.ItemsPerPackage = req.ItemsPerPackage
		existing.CostPerBox = req.CostPerBox
		existing.CostPerPackage = req.CostPerPackage
		existing.CostPerItem = req.CostPerItem
		existing.PurchaseDate = req.PurchaseDate
		existing.ExpiryDate = req.ExpiryDate
		existing.UpdatedBy = userID.String()

		if err := validateStruct(existing); err != nil {
			return err
		}
		existing.ApplyBreakdown(existing.Breakdown().Resolve())

		product, err := s.productRepo.LockByID(tx, existing.ProductID)
		if err != nil {
			return ErrNotFound
		}

		if err := s.purchaseRepo.Save(tx, existing); err != nil {
			return err
		}

		delta := existing.TotalItems() - previousItems
		if existing.ProductID != previousProductID {
			// Reassigned to another product: back the whole count out of the
			// old one and apply the new count in full.
			if err := s.productRepo.AddStock(tx, previousProductID, -previousItems, existing.UpdatedBy); err != nil {
				return err
			}
			delta = existing.TotalItems()
		}
		if delta != 0 {
			if err := s.productRepo.AddStock(tx, product.ID, delta, existing.UpdatedBy); err != nil {
				return err
			}
		}

		updated = existing
		s.wsHub.Notify("stock_update", map[string]interface{}{
			"action":     "purchase_updated",
			"product_id": product.ID,
			"delta":      delta,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *purchaseService) ListPurchases() ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll()
}

func (s *purchaseService) GetPurchase(id uuid.UUID) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return purchase, nil
}
