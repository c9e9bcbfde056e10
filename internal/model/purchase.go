package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopims/shopims-backend/internal/costing"
)

// Purchase is one stock-in record. Quantities and costs may be entered at any
// level of the box/package/item hierarchy; the missing levels and the total
// are derived on save.
type Purchase struct {
	BaseModel
	SupplierID uuid.UUID `gorm:"type:uuid;not null" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	BoxQuantity     int `gorm:"default:0" json:"box_quantity"`
	PackagesPerBox  int `gorm:"default:0" json:"packages_per_box"`
	ItemsPerPackage int `gorm:"default:0" json:"items_per_package"`

	CostPerBox     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_per_box"`
	CostPerPackage decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_per_package"`
	CostPerItem    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_per_item"`

	// Derived, persisted for reporting.
	TotalCost decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_cost"`

	PurchaseDate time.Time  `gorm:"type:date;not null;index" json:"purchase_date" validate:"required"`
	ExpiryDate   *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	ReceivedByUserID *uuid.UUID `gorm:"type:uuid" json:"received_by_user_id,omitempty"`
	ReceivedBy       *User      `gorm:"foreignKey:ReceivedByUserID" json:"received_by,omitempty" validate:"-"`
}

func (p *Purchase) Breakdown() costing.Breakdown {
	return costing.Breakdown{
		BoxQuantity:     p.BoxQuantity,
		PackagesPerBox:  p.PackagesPerBox,
		ItemsPerPackage: p.ItemsPerPackage,
		CostPerBox:      p.CostPerBox,
		CostPerPackage:  p.CostPerPackage,
		CostPerItem:     p.CostPerItem,
	}
}

// ApplyBreakdown writes a resolved breakdown back onto the record.
func (p *Purchase) ApplyBreakdown(b costing.Breakdown) {
	p.CostPerBox = b.CostPerBox
	p.CostPerPackage = b.CostPerPackage
	p.CostPerItem = b.CostPerItem
	p.TotalCost = b.TotalCost()
}

// TotalItems is the piece count this purchase adds to stock.
func (p *Purchase) TotalItems() int {
	return p.Breakdown().TotalItems()
}
