package repository

import (
	"time"

	"github.com/shopims/shopims-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	// ItemsInRange loads sale items whose parent sale was created within
	// [start, end], with products preloaded for profit aggregation.
	ItemsInRange(start, end time.Time) ([]model.SaleItem, error)
	TotalAmountInRange(start, end time.Time) (decimal.Decimal, error)
	CountInRange(start, end time.Time) (int64, error)
	// ItemsSoldByProduct sums derived item counts per product across all
	// sale items, mirroring Breakdown.TotalItems.
	ItemsSoldByProduct() (map[uuid.UUID]int, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").
		Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) ItemsInRange(start, end time.Time) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.db.
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.created_at BETWEEN ? AND ?", start, end).
		Preload("Product").
		Find(&items).Error
	return items, err
}

func (r *saleRepo) TotalAmountInRange(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) CountInRange(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *saleRepo) ItemsSoldByProduct() (map[uuid.UUID]int, error) {
	rows, err := r.db.Model(&model.SaleItem{}).
		Select(`product_id,
			COALESCE(SUM(GREATEST(box_quantity, 1) * GREATEST(packages_per_box, 1) * GREATEST(items_per_package, 1)), 0) as items`).
		Group("product_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID]int)
	for rows.Next() {
		var productID uuid.UUID
		var items int
		if err := rows.Scan(&productID, &items); err != nil {
			return nil, err
		}
		result[productID] = items
	}
	return result, rows.Err()
}
