package model

import "github.com/shopspring/decimal"

// Share is a partner's invested capital. The ownership percentage is always
// computed against the current capital total, never stored.
type Share struct {
	BaseModel
	PartnerName string          `gorm:"type:varchar(100);not null" json:"partner_name" validate:"required"`
	Capital     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"capital" validate:"required"`
}

// ShareResponse augments a share with its computed percentage.
type ShareResponse struct {
	Share
	Percentage decimal.Decimal `json:"percentage"`
}
