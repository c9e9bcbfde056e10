// Package report holds the pure aggregation logic behind the daily and
// monthly report builders: gross profit over sale items, partner profit
// allocation and period boundaries.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopims/shopims-backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// GrossProfit sums (unit price - current product purchase price) * quantity
// over the given sale items. Each line uses its own derived unit price and
// quantity, so mixed-price sales aggregate correctly. Items must have their
// Product preloaded; the product's current purchase price is the cost basis
// even when it changed after the sale was recorded.
func GrossProfit(items []model.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		qty := items[i].Quantity()
		if qty == 0 || items[i].Product == nil {
			continue
		}
		margin := items[i].UnitPrice().Sub(items[i].Product.PurchasePrice)
		total = total.Add(margin.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Round(2)
}

// Percentage is a partner's ownership share of the given capital total,
// in percent. A zero total yields zero rather than a division fault.
func Percentage(capital, totalCapital decimal.Decimal) decimal.Decimal {
	if totalCapital.IsZero() {
		return decimal.Zero
	}
	return capital.Div(totalCapital).Mul(hundred)
}

// TotalCapital sums the invested capital across all shares.
func TotalCapital(shares []model.Share) decimal.Decimal {
	total := decimal.Zero
	for i := range shares {
		total = total.Add(shares[i].Capital)
	}
	return total
}

// Allocate splits totalProfit across partners in proportion to capital,
// preserving the order of the share records. Each allocation is rounded to
// 2 decimal places independently.
func Allocate(shares []model.Share, totalProfit decimal.Decimal) []model.PartnerProfit {
	totalCapital := TotalCapital(shares)

	out := make([]model.PartnerProfit, 0, len(shares))
	for i := range shares {
		pct := Percentage(shares[i].Capital, totalCapital)
		out = append(out, model.PartnerProfit{
			Partner:    shares[i].PartnerName,
			Percentage: pct.Round(2),
			Profit:     pct.Div(hundred).Mul(totalProfit).Round(2),
		})
	}
	return out
}

// MonthBounds returns the first and last instant of a calendar month.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// DayBounds returns the first and last instant of the day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// MonthKey normalizes any instant to the first day of its month, the key a
// persisted monthly report row is upserted on.
func MonthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
