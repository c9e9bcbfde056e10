package service

import (
	"errors"

	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/repository"
	"github.com/shopims/shopims-backend/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	RecordSale(req *model.Sale, userID uuid.UUID) error
	ListSales() ([]model.Sale, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	db          txRunner
	wsHub       *ws.Hub
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	db txRunner,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		db:          db,
		wsHub:       hub,
	}
}

// RecordSale resolves every line's hierarchy, verifies on-hand stock,
// decrements it and persists the sale with its derived total, atomically.
// Overselling is rejected; backorders are not supported.
func (s *saleService) RecordSale(req *model.Sale, userID uuid.UUID) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		uid := userID.String()
		total := decimal.Zero

		for i := range req.Items {
			item := &req.Items[i]
			item.ApplyBreakdown(item.Breakdown().Resolve())

			product, err := s.productRepo.LockByID(tx, item.ProductID)
			if err != nil {
				return ErrNotFound
			}

			qty := item.Quantity()
			if product.QuantityInStock < qty {
				return ErrInsufficientStock
			}
			if err := s.productRepo.AddStock(tx, product.ID, -qty, uid); err != nil {
				return err
			}

			item.CreatedBy = uid
			item.UpdatedBy = uid
			total = total.Add(item.LineTotal())
		}

		req.TotalAmount = total.Round(2)
		req.CreatedBy = uid
		req.UpdatedBy = uid
		if err := s.saleRepo.Create(tx, req); err != nil {
			return err
		}

		s.wsHub.Notify("stock_update", map[string]interface{}{
			"action":       "sale_recorded",
			"sale_id":      req.ID,
			"total_amount": req.TotalAmount,
			"line_count":   len(req.Items),
		})
		return nil
	})
}

func (s *saleService) ListSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sale, nil
}
