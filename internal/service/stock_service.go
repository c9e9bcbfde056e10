package service

import (
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/repository"
	"github.com/shopims/shopims-backend/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the manual correction path outside the purchase/sale flow.
type StockService interface {
	RecordAdjustment(req *model.StockAdjustment, userID uuid.UUID) error
	ListAdjustments() ([]model.StockAdjustment, error)
}

type stockService struct {
	adjustmentRepo repository.AdjustmentRepository
	productRepo    repository.ProductRepository
	db             txRunner
	wsHub          *ws.Hub
}

func NewStockService(
	adjustmentRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
	db txRunner,
	hub *ws.Hub,
) StockService {
	return &stockService{
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		db:             db,
		wsHub:          hub,
	}
}

// RecordAdjustment applies a signed stock delta and records who did it and
// why. Negative adjustments may take stock below zero on purpose; shrinkage
// corrections have to be bookable even when the counter is already wrong.
func (s *stockService) RecordAdjustment(req *model.StockAdjustment, userID uuid.UUID) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockByID(tx, req.ProductID)
		if err != nil {
			return ErrNotFound
		}

		uid := userID.String()
		req.CreatedBy = uid
		req.UpdatedBy = uid
		req.AdjustedByUserID = &userID
		if err := s.adjustmentRepo.Create(tx, req); err != nil {
			return err
		}

		if err := s.productRepo.AddStock(tx, product.ID, req.Quantity, uid); err != nil {
			return err
		}

		s.wsHub.Notify("stock_update", map[string]interface{}{
			"action":     "stock_adjusted",
			"product_id": product.ID,
			"delta":      req.Quantity,
			"reason":     req.Reason,
		})
		return nil
	})
}

func (s *stockService) ListAdjustments() ([]model.StockAdjustment, error) {
	return s.adjustmentRepo.FindAll()
}
