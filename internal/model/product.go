package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name          string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Barcode       string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"barcode" validate:"required"`
	Category      string          `gorm:"type:varchar(50)" json:"category"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"purchase_price" validate:"required"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"selling_price" validate:"required"`

	// Authoritative on-hand count. Mutated only through the stock ledger
	// paths (purchase save, sale completion, manual adjustment).
	QuantityInStock int `gorm:"default:0" json:"quantity_in_stock"`
	MinStockLevel   int `gorm:"default:0" json:"min_stock_level"`

	SupplierID uuid.UUID `gorm:"type:uuid;not null" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
}

// LowStock reports whether the product has fallen to or below its minimum
// stock level.
func (p *Product) LowStock() bool {
	return p.QuantityInStock <= p.MinStockLevel
}

// ProductListing is the read-only list shape exposed by the product API.
type ProductListing struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	QuantityInStock int             `json:"quantity_in_stock"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Barcode         string          `json:"barcode"`
	LowStock        bool            `json:"low_stock"`
}

func (p *Product) ToListing() ProductListing {
	return ProductListing{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		QuantityInStock: p.QuantityInStock,
		SellingPrice:    p.SellingPrice,
		Barcode:         p.Barcode,
		LowStock:        p.LowStock(),
	}
}
