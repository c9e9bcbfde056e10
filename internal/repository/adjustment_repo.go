package repository

import (
	"github.com/shopims/shopims-backend/internal/model"

	"gorm.io/gorm"
)

type AdjustmentRepository interface {
	Create(tx *gorm.DB, adjustment *model.StockAdjustment) error
	FindAll() ([]model.StockAdjustment, error)
}

type adjustmentRepo struct {
	db *gorm.DB
}

func NewAdjustmentRepo(db *gorm.DB) AdjustmentRepository {
	return &adjustmentRepo{db}
}

func (r *adjustmentRepo) Create(tx *gorm.DB, adjustment *model.StockAdjustment) error {
	return tx.Create(adjustment).Error
}

func (r *adjustmentRepo) FindAll() ([]model.StockAdjustment, error) {
	var adjustments []model.StockAdjustment
	err := r.db.Preload("Product").Preload("AdjustedBy").
		Order("created_at DESC").Find(&adjustments).Error
	return adjustments, err
}
