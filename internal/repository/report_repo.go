package repository

import (
	"time"

	"github.com/shopims/shopims-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository interface {
	// UpsertMonthly inserts or overwrites the row for report.Month. Running
	// the builder twice for one month leaves a single row.
	UpsertMonthly(report *model.MonthlyReport) error
	FindAllMonthly() ([]model.MonthlyReport, error)
	// RefreshTotalProfit overwrites the running-total cache row.
	RefreshTotalProfit(amount decimal.Decimal) error
	GetTotalProfit() (decimal.Decimal, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) UpsertMonthly(report *model.MonthlyReport) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_purchase_amount",
			"total_sales_amount",
			"total_profit",
			"total_sales_count",
			"report_data",
			"updated_at",
			"updated_by",
		}),
	}).Create(report).Error
}

func (r *reportRepo) FindAllMonthly() ([]model.MonthlyReport, error) {
	var reports []model.MonthlyReport
	err := r.db.Order("month ASC").Find(&reports).Error
	return reports, err
}

func (r *reportRepo) RefreshTotalProfit(amount decimal.Decimal) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&model.TotalProfit{ID: 1, Amount: amount, UpdatedAt: time.Now()}).Error
}

func (r *reportRepo) GetTotalProfit() (decimal.Decimal, error) {
	var cache model.TotalProfit
	if err := r.db.First(&cache, "id = ?", 1).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return cache.Amount, nil
}
