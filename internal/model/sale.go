package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopims/shopims-backend/internal/costing"
)

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayMobile PaymentMethod = "mobile"
)

type Sale struct {
	BaseModel
	CustomerID *uuid.UUID `gorm:"type:uuid" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`

	// Derived from the line items on record.
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_amount"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method" validate:"required,oneof=cash card mobile"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items" validate:"required,min=1,dive"`
}

// SaleItem is one line of a sale. Quantity and unit price are derived from
// the hierarchy fields on read, never stored as independent columns.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	BoxQuantity     int `gorm:"default:0" json:"box_quantity"`
	PackagesPerBox  int `gorm:"default:0" json:"packages_per_box"`
	ItemsPerPackage int `gorm:"default:0" json:"items_per_package"`

	CostPerBox     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_per_box"`
	CostPerPackage decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_per_package"`
	CostPerItem    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_per_item"`
}

func (i *SaleItem) Breakdown() costing.Breakdown {
	return costing.Breakdown{
		BoxQuantity:     i.BoxQuantity,
		PackagesPerBox:  i.PackagesPerBox,
		ItemsPerPackage: i.ItemsPerPackage,
		CostPerBox:      i.CostPerBox,
		CostPerPackage:  i.CostPerPackage,
		CostPerItem:     i.CostPerItem,
	}
}

func (i *SaleItem) ApplyBreakdown(b costing.Breakdown) {
	i.CostPerBox = b.CostPerBox
	i.CostPerPackage = b.CostPerPackage
	i.CostPerItem = b.CostPerItem
}

// Quantity is the derived piece count of this line.
func (i *SaleItem) Quantity() int {
	return i.Breakdown().TotalItems()
}

// UnitPrice is the derived per-item selling price of this line.
func (i *SaleItem) UnitPrice() decimal.Decimal {
	return i.Breakdown().UnitPrice()
}

// LineTotal is the monetary total of this line per the hierarchy precedence.
func (i *SaleItem) LineTotal() decimal.Decimal {
	return i.Breakdown().Resolve().TotalCost()
}
