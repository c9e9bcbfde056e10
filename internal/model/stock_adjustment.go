package model

import "github.com/google/uuid"

// StockAdjustment is a manual correction outside the purchase/sale flow.
// Quantity is signed; negative values remove stock.
type StockAdjustment struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Quantity int    `gorm:"not null" json:"quantity" validate:"required"`
	Reason   string `gorm:"type:text;not null" json:"reason" validate:"required"`

	AdjustedByUserID *uuid.UUID `gorm:"type:uuid" json:"adjusted_by_user_id,omitempty"`
	AdjustedBy       *User      `gorm:"foreignKey:AdjustedByUserID" json:"adjusted_by,omitempty" validate:"-"`
}
