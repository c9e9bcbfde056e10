package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/report"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fakePurchaseRepo struct {
	totalCost decimal.Decimal
	purchased map[uuid.UUID]int
	byID      map[uuid.UUID]*model.Purchase
	created   []*model.Purchase
	saved     []*model.Purchase
}

func (f *fakePurchaseRepo) Create(tx *gorm.DB, p *model.Purchase) error {
	f.created = append(f.created, p)
	return nil
}
func (f *fakePurchaseRepo) Save(tx *gorm.DB, p *model.Purchase) error {
	f.saved = append(f.saved, p)
	return nil
}
func (f *fakePurchaseRepo) FindAll() ([]model.Purchase, error) { return nil, nil }
func (f *fakePurchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePurchaseRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePurchaseRepo) TotalCostInRange(start, end time.Time) (decimal.Decimal, error) {
	return f.totalCost, nil
}
func (f *fakePurchaseRepo) ItemsPurchasedByProduct() (map[uuid.UUID]int, error) {
	return f.purchased, nil
}

type fakeSaleRepo struct {
	items   []model.SaleItem
	amount  decimal.Decimal
	count   int64
	sold    map[uuid.UUID]int
	created []*model.Sale
}

func (f *fakeSaleRepo) Create(tx *gorm.DB, s *model.Sale) error {
	f.created = append(f.created, s)
	return nil
}
func (f *fakeSaleRepo) FindAll() ([]model.Sale, error)          { return nil, nil }
func (f *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSaleRepo) ItemsInRange(start, end time.Time) ([]model.SaleItem, error) {
	return f.items, nil
}
func (f *fakeSaleRepo) TotalAmountInRange(start, end time.Time) (decimal.Decimal, error) {
	return f.amount, nil
}
func (f *fakeSaleRepo) CountInRange(start, end time.Time) (int64, error) { return f.count, nil }
func (f *fakeSaleRepo) ItemsSoldByProduct() (map[uuid.UUID]int, error)   { return f.sold, nil }

// stockOp records one AddStock call so tests can assert on applied deltas.
type stockOp struct {
	productID uuid.UUID
	delta     int
}

type fakeProductRepo struct {
	products []model.Product
	byID     map[uuid.UUID]*model.Product
	stockOps []stockOp
}

func (f *fakeProductRepo) Create(p *model.Product) error     { return nil }
func (f *fakeProductRepo) FindAll() ([]model.Product, error) { return f.products, nil }
func (f *fakeProductRepo) Update(p *model.Product) error     { return nil }
func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) AddStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) error {
	f.stockOps = append(f.stockOps, stockOp{productID: id, delta: delta})
	if p, ok := f.byID[id]; ok {
		p.QuantityInStock += delta
	}
	return nil
}

type fakeShareRepo struct {
	shares []model.Share
}

func (f *fakeShareRepo) Create(s *model.Share) error     { return nil }
func (f *fakeShareRepo) FindAll() ([]model.Share, error) { return f.shares, nil }

type fakeReportRepo struct {
	byMonth     map[time.Time]*model.MonthlyReport
	totalProfit decimal.Decimal
	refreshErr  error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{byMonth: make(map[time.Time]*model.MonthlyReport)}
}

func (f *fakeReportRepo) UpsertMonthly(r *model.MonthlyReport) error {
	f.byMonth[r.Month] = r
	return nil
}

func (f *fakeReportRepo) FindAllMonthly() ([]model.MonthlyReport, error) {
	var out []model.MonthlyReport
	for _, r := range f.byMonth {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReportRepo) RefreshTotalProfit(amount decimal.Decimal) error {
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.totalProfit = amount
	return nil
}

func (f *fakeReportRepo) GetTotalProfit() (decimal.Decimal, error) { return f.totalProfit, nil }

func testFixture() (*fakePurchaseRepo, *fakeSaleRepo, *fakeProductRepo, *fakeShareRepo, *fakeReportRepo, ReportService) {
	productID := uuid.New()
	product := model.Product{
		Name:            "Sugar 1kg",
		PurchasePrice:   dec("10"),
		SellingPrice:    dec("15"),
		QuantityInStock: 97,
	}
	product.ID = productID

	purchaseRepo := &fakePurchaseRepo{
		totalCost: dec("1000"),
		purchased: map[uuid.UUID]int{productID: 100},
	}
	saleRepo := &fakeSaleRepo{
		items: []model.SaleItem{
			{ItemsPerPackage: 3, CostPerItem: dec("15"), Product: &product},
		},
		amount: dec("45"),
		count:  1,
		sold:   map[uuid.UUID]int{productID: 3},
	}
	productRepo := &fakeProductRepo{products: []model.Product{product}}
	shareRepo := &fakeShareRepo{shares: []model.Share{
		{PartnerName: "A", Capital: dec("300")},
		{PartnerName: "B", Capital: dec("700")},
	}}
	reportRepo := newFakeReportRepo()

	svc := NewReportService(purchaseRepo, saleRepo, productRepo, shareRepo, reportRepo)
	return purchaseRepo, saleRepo, productRepo, shareRepo, reportRepo, svc
}

func TestMonthlyReportSnapshot(t *testing.T) {
	_, _, _, _, _, svc := testFixture()

	snap, err := svc.MonthlyReport(2025, time.June)
	require.NoError(t, err)

	assert.Equal(t, "2025-06", snap.Period)
	assert.True(t, snap.TotalPurchaseAmount.Equal(dec("1000")))
	assert.True(t, snap.TotalSalesAmount.Equal(dec("45")))
	// (15 - 10) * 3
	assert.True(t, snap.Profit.Equal(dec("15")), "got %s", snap.Profit)
	assert.Equal(t, int64(1), snap.TotalSalesCount)

	require.Len(t, snap.RemainingStock, 1)
	assert.Equal(t, "Sugar 1kg", snap.RemainingStock[0].ProductName)
	assert.Equal(t, 100, snap.RemainingStock[0].Purchased)
	assert.Equal(t, 3, snap.RemainingStock[0].Sold)
	assert.Equal(t, 97, snap.RemainingStock[0].Remaining)

	require.Len(t, snap.PartnerProfits, 2)
	assert.True(t, snap.PartnerProfits[0].Profit.Equal(dec("4.50")), "got %s", snap.PartnerProfits[0].Profit)
	assert.True(t, snap.PartnerProfits[1].Profit.Equal(dec("10.50")), "got %s", snap.PartnerProfits[1].Profit)
}

func TestGenerateMonthlyReportIdempotent(t *testing.T) {
	_, _, _, _, reportRepo, svc := testFixture()

	first, err := svc.GenerateMonthlyReport(2025, time.June, "tester")
	require.NoError(t, err)
	second, err := svc.GenerateMonthlyReport(2025, time.June, "tester")
	require.NoError(t, err)

	// One row per month, identical content on both runs.
	assert.Len(t, reportRepo.byMonth, 1)
	assert.Equal(t, first.Month, second.Month)
	assert.True(t, first.TotalProfit.Equal(second.TotalProfit))
	assert.True(t, first.TotalPurchaseAmount.Equal(second.TotalPurchaseAmount))
	assert.True(t, first.TotalSalesAmount.Equal(second.TotalSalesAmount))
	assert.Equal(t, first.ReportData.Stock, second.ReportData.Stock)
	assert.Equal(t, first.ReportData.PartnerProfits, second.ReportData.PartnerProfits)

	// The running-total cache was refreshed from the ledger.
	assert.True(t, reportRepo.totalProfit.Equal(dec("15")))
}

func TestListMonthlyReportsRunningTotals(t *testing.T) {
	_, _, _, _, _, svc := testFixture()

	_, err := svc.GenerateMonthlyReport(2025, time.June, "tester")
	require.NoError(t, err)

	list, err := svc.ListMonthlyReports()
	require.NoError(t, err)

	require.Len(t, list.Reports, 1)
	assert.True(t, list.RunningTotals.Purchases.Equal(dec("1000")))
	assert.True(t, list.RunningTotals.Sales.Equal(dec("45")))
	assert.True(t, list.RunningTotals.Profit.Equal(dec("15")))
	assert.True(t, list.RunningTotals.TotalProfit.Equal(dec("15")))
}

func TestExportMonthlyReportsCSV(t *testing.T) {
	_, _, _, _, _, svc := testFixture()

	_, err := svc.GenerateMonthlyReport(2025, time.June, "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportMonthlyReportsCSV(&buf))

	out := buf.String()
	assert.Contains(t, out, "month,total_purchase_amount,total_sales_amount,total_profit,total_sales_count")
	assert.Contains(t, out, "2025-06,1000.00,45.00,15.00,1")
}

func TestGenerateMonthlyReportSurvivesCacheRefreshFailure(t *testing.T) {
	_, _, _, _, reportRepo, svc := testFixture()
	reportRepo.refreshErr = errors.New("connection reset")

	row, err := svc.GenerateMonthlyReport(2025, time.June, "tester")
	require.NoError(t, err)

	// The monthly row is committed; only the cache stays stale.
	require.NotNil(t, row)
	assert.Len(t, reportRepo.byMonth, 1)
	assert.True(t, reportRepo.totalProfit.IsZero())
}

func TestMonthKeyNormalization(t *testing.T) {
	_, _, _, _, reportRepo, svc := testFixture()

	row, err := svc.GenerateMonthlyReport(2025, time.June, "tester")
	require.NoError(t, err)

	key := report.MonthKey(time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, key, row.Month)
	_, ok := reportRepo.byMonth[key]
	assert.True(t, ok)
}
