package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// StockLine is the per-product summary embedded in a report.
type StockLine struct {
	ProductName string `json:"product_name"`
	Purchased   int    `json:"purchased"`
	Sold        int    `json:"sold"`
	Remaining   int    `json:"remaining"`
}

// PartnerProfit is one partner's slice of the period profit.
type PartnerProfit struct {
	Partner    string          `json:"partner"`
	Percentage decimal.Decimal `json:"percentage"`
	Profit     decimal.Decimal `json:"profit"`
}

// ReportPayload is the structured part of a report row, stored as jsonb.
type ReportPayload struct {
	Stock          []StockLine     `json:"stock"`
	PartnerProfits []PartnerProfit `json:"partner_profits"`
}

func (p ReportPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ReportPayload) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = ReportPayload{}
		return nil
	}
	return errors.New("unsupported report payload source")
}

// MonthlyReport is one persisted row per calendar month, upserted on the
// month key so re-generation overwrites instead of duplicating.
type MonthlyReport struct {
	BaseModel
	Month time.Time `gorm:"type:date;uniqueIndex;not null" json:"month"`

	TotalPurchaseAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_purchase_amount"`
	TotalSalesAmount    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_sales_amount"`
	TotalProfit         decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_profit"`
	TotalSalesCount     int64           `gorm:"default:0" json:"total_sales_count"`

	ReportData ReportPayload `gorm:"type:jsonb" json:"report_data"`
}

// TotalProfit is a single running-total cache row, recomputed from the sale
// ledger whenever a report is built. It is not authoritative.
type TotalProfit struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}
