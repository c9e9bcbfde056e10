package repository

import (
	"time"

	"github.com/shopims/shopims-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	Save(tx *gorm.DB, purchase *model.Purchase) error
	FindAll() ([]model.Purchase, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error)
	TotalCostInRange(start, end time.Time) (decimal.Decimal, error)
	// ItemsPurchasedByProduct sums derived item counts per product across all
	// purchases. Absent multipliers count as 1, matching Breakdown.TotalItems.
	ItemsPurchasedByProduct() (map[uuid.UUID]int, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) Save(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Save(purchase).Error
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Supplier").Preload("Product").Preload("ReceivedBy").
		Order("purchase_date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Preload("Supplier").Preload("Product").Preload("ReceivedBy").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) TotalCostInRange(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Purchase{}).
		Where("purchase_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&total).Error
	return total, err
}

func (r *purchaseRepo) ItemsPurchasedByProduct() (map[uuid.UUID]int, error) {
	rows, err := r.db.Model(&model.Purchase{}).
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
