package service

import (
	"encoding/csv"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/report"
	"github.com/shopims/shopims-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportSnapshot is the computed shape shared by the daily and monthly
// reports. Daily snapshots are never persisted; monthly ones are upserted by
// month key.
type ReportSnapshot struct {
	Period              string                `json:"period"`
	TotalPurchaseAmount decimal.Decimal       `json:"total_purchase_amount"`
	TotalSalesAmount    decimal.Decimal       `json:"total_sales_amount"`
	Profit              decimal.Decimal       `json:"profit"`
	TotalSalesCount     int64                 `json:"total_sales_count"`
	RemainingStock      []model.StockLine     `json:"remaining_stock"`
	PartnerProfits      []model.PartnerProfit `json:"partner_profits"`
}

// RunningTotals are recomputed from the persisted rows on every list call.
type RunningTotals struct {
	Purchases   decimal.Decimal `json:"purchases"`
	Sales       decimal.Decimal `json:"sales"`
	Profit      decimal.Decimal `json:"profit"`
	TotalProfit decimal.Decimal `json:"total_profit"` // ledger-recomputed cache
}

type MonthlyReportList struct {
	Reports       []model.MonthlyReport `json:"reports"`
	RunningTotals RunningTotals         `json:"running_totals"`
}

type ReportService interface {
	DailyReport(at time.Time) (*ReportSnapshot, error)
	MonthlyReport(year int, month time.Month) (*ReportSnapshot, error)
	// GenerateMonthlyReport computes the snapshot and upserts the persisted
	// row for that month. Re-running with unchanged data is idempotent.
	GenerateMonthlyReport(year int, month time.Month, userID string) (*model.MonthlyReport, error)
	ListMonthlyReports() (*MonthlyReportList, error)
	ExportMonthlyReportsCSV(w io.Writer) error
}

type reportService struct {
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	shareRepo    repository.ShareRepository
	reportRepo   repository.ReportRepository
}

func NewReportService(
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	shareRepo repository.ShareRepository,
	reportRepo repository.ReportRepository,
) ReportService {
	return &reportService{
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		shareRepo:    shareRepo,
		reportRepo:   reportRepo,
	}
}

// buildSnapshot is a pure read: aggregate purchases, sales and profit over
// [start, end], then the all-time per-product movement summary and the
// partner split of the period profit.
func (s *reportService) buildSnapshot(period string, start, end time.Time) (*ReportSnapshot, error) {
	purchases, err := s.purchaseRepo.TotalCostInRange(start, end)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.TotalAmountInRange(start, end)
	if err != nil {
		return nil, err
	}
	salesCount, err := s.saleRepo.CountInRange(start, end)
	if err != nil {
		return nil, err
	}

	items, err := s.saleRepo.ItemsInRange(start, end)
	if err != nil {
		return nil, err
	}
	profit := report.GrossProfit(items)

	shares, err := s.shareRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stock, err := s.stockSummary()
	if err != nil {
		return nil, err
	}

	return &ReportSnapshot{
		Period:              period,
		TotalPurchaseAmount: purchases,
		TotalSalesAmount:    sales,
		Profit:              profit,
		TotalSalesCount:     salesCount,
		RemainingStock:      stock,
		PartnerProfits:      report.Allocate(shares, profit),
	}, nil
}

// stockSummary pairs each product's cumulative purchased/sold item counts
// with its current on-hand quantity.
func (s *reportService) stockSummary() ([]model.StockLine, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	purchased, err := s.purchaseRepo.ItemsPurchasedByProduct()
	if err != nil {
		return nil, err
	}
	sold, err := s.saleRepo.ItemsSoldByProduct()
	if err != nil {
		return nil, err
	}

	lines := make([]model.StockLine, len(products))
	for i := range products {
		lines[i] = model.StockLine{
			ProductName: products[i].Name,
			Purchased:   purchased[products[i].ID],
			Sold:        sold[products[i].ID],
			Remaining:   products[i].QuantityInStock,
		}
	}
	return lines, nil
}

func (s *reportService) DailyReport(at time.Time) (*ReportSnapshot, error) {
	start, end := report.DayBounds(at)
	return s.buildSnapshot(start.Format("2006-01-02"), start, end)
}

func (s *reportService) MonthlyReport(year int, month time.Month) (*ReportSnapshot, error) {
	start, end := report.MonthBounds(year, month, time.UTC)
	return s.buildSnapshot(start.Format("2006-01"), start, end)
}

func (s *reportService) GenerateMonthlyReport(year int, month time.Month, userID string) (*model.MonthlyReport, error) {
	snapshot, err := s.MonthlyReport(year, month)
	if err != nil {
		return nil, err
	}

	row := &model.MonthlyReport{
		Month:               report.MonthKey(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)),
		TotalPurchaseAmount: snapshot.TotalPurchaseAmount,
		TotalSalesAmount:    snapshot.TotalSalesAmount,
		TotalProfit:         snapshot.Profit,
		TotalSalesCount:     snapshot.TotalSalesCount,
		ReportData: model.ReportPayload{
			Stock:          snapshot.RemainingStock,
			PartnerProfits: snapshot.PartnerProfits,
		},
	}
	row.CreatedBy = userID
	row.UpdatedBy = userID

	if err := s.reportRepo.UpsertMonthly(row); err != nil {
		return nil, err
	}

	// Refresh the running-total cache from the authoritative sale ledger. The
	// monthly row is already persisted, so a failed refresh only leaves the
	// cache stale until the next generation.
	allItems, err := s.saleRepo.ItemsInRange(time.Time{}, time.Now())
	if err != nil {
		log.Printf("Warning: skipping total profit refresh, sale ledger read failed: %v", err)
		return row, nil
	}
	if err := s.reportRepo.RefreshTotalProfit(report.GrossProfit(allItems)); err != nil {
		log.Printf("Warning: total profit cache refresh failed: %v", err)
	}

	return row, nil
}

func (s *reportService) ListMonthlyReports() (*MonthlyReportList, error) {
	reports, err := s.reportRepo.FindAllMonthly()
	if err != nil {
		return nil, err
	}

	totals := RunningTotals{
		Purchases: decimal.Zero,
		Sales:     decimal.Zero,
		Profit:    decimal.Zero,
	}
	for i := range reports {
		totals.Purchases = totals.Purchases.Add(reports[i].TotalPurchaseAmount)
		totals.Sales = totals.Sales.Add(reports[i].TotalSalesAmount)
		totals.Profit = totals.Profit.Add(reports[i].TotalProfit)
	}

	cached, err := s.reportRepo.GetTotalProfit()
	if err != nil {
		return nil, err
	}
	totals.TotalProfit = cached

	return &MonthlyReportList{Reports: reports, RunningTotals: totals}, nil
}

// ExportMonthlyReportsCSV writes one line per persisted report row.
func (s *reportService) ExportMonthlyReportsCSV(w io.Writer) error {
	reports, err := s.reportRepo.FindAllMonthly()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "total_purchase_amount", "total_sales_amount", "total_profit", "total_sales_count"}); err != nil {
		return err
	}
	for i := range reports {
		r := &reports[i]
		record := []string{
			r.Month.Format("2006-01"),
			r.TotalPurchaseAmount.StringFixed(2),
			r.TotalSalesAmount.StringFixed(2),
			r.TotalProfit.StringFixed(2),
			strconv.FormatInt(r.TotalSalesCount, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
