package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopims/shopims-backend/internal/model"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func item(qty int, unitPrice, purchasePrice string) model.SaleItem {
	return model.SaleItem{
		ItemsPerPackage: qty,
		CostPerItem:     d(unitPrice),
		Product:         &model.Product{PurchasePrice: d(purchasePrice)},
	}
}

func TestGrossProfit(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		// (15 - 10) * 3
		got := GrossProfit([]model.SaleItem{item(3, "15", "10")})
		assert.True(t, got.Equal(d("15")), "got %s", got)
	})

	t.Run("mixed prices within one sale", func(t *testing.T) {
		items := []model.SaleItem{
			item(2, "20", "12"), // 16
			item(5, "8", "5"),   // 15
		}
		got := GrossProfit(items)
		assert.True(t, got.Equal(d("31")), "got %s", got)
	})

	t.Run("no multipliers counts as a single item", func(t *testing.T) {
		items := []model.SaleItem{
			{CostPerItem: d("15"), Product: &model.Product{PurchasePrice: d("10")}},
		}
		// No multipliers at all counts as one item.
		got := GrossProfit(items)
		assert.True(t, got.Equal(d("5")), "got %s", got)
	})

	t.Run("negative margin is not clamped", func(t *testing.T) {
		got := GrossProfit([]model.SaleItem{item(2, "4", "10")})
		assert.True(t, got.Equal(d("-12")), "got %s", got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.True(t, GrossProfit(nil).IsZero())
	})
}

func TestAllocate(t *testing.T) {
	shares := []model.Share{
		{PartnerName: "A", Capital: d("300")},
		{PartnerName: "B", Capital: d("700")},
	}

	got := Allocate(shares, d("100"))
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].Partner)
	assert.True(t, got[0].Percentage.Equal(d("30")), "got %s", got[0].Percentage)
	assert.True(t, got[0].Profit.Equal(d("30.00")), "got %s", got[0].Profit)

	assert.Equal(t, "B", got[1].Partner)
	assert.True(t, got[1].Percentage.Equal(d("70")), "got %s", got[1].Percentage)
	assert.True(t, got[1].Profit.Equal(d("70.00")), "got %s", got[1].Profit)

	sum := got[0].Profit.Add(got[1].Profit)
	assert.True(t, sum.Equal(d("100.00")), "allocations must sum to the total, got %s", sum)
}

func TestAllocateZeroCapital(t *testing.T) {
	shares := []model.Share{
		{PartnerName: "A", Capital: decimal.Zero},
		{PartnerName: "B", Capital: decimal.Zero},
	}

	got := Allocate(shares, d("500"))
	require.Len(t, got, 2)
	for _, pp := range got {
		assert.True(t, pp.Percentage.IsZero())
		assert.True(t, pp.Profit.IsZero())
	}
}

func TestAllocateRounding(t *testing.T) {
	shares := []model.Share{
		{PartnerName: "A", Capital: d("1")},
		{PartnerName: "B", Capital: d("1")},
		{PartnerName: "C", Capital: d("1")},
	}

	got := Allocate(shares, d("100"))
	require.Len(t, got, 3)
	for _, pp := range got {
		assert.True(t, pp.Profit.Equal(d("33.33")), "got %s", pp.Profit)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2024, time.February, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	// 2024 is a leap year.
	assert.Equal(t, 29, end.Day())
	assert.Equal(t, time.February, end.Month())

	start, end = MonthBounds(2025, time.December, time.UTC)
	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, 31, end.Day())
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2025, 6, 15, 13, 45, 12, 0, time.UTC)
	start, end := DayBounds(at)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.After(at))
	assert.Equal(t, 15, end.Day())
}

func TestMonthKey(t *testing.T) {
	key := MonthKey(time.Date(2025, 6, 15, 13, 45, 0, 0, time.Local))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), key)
}
