// Command monthly-report runs the report builder for one calendar month
// against the live database, useful from cron or by hand after data fixes.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/shopims/shopims-backend/internal/repository"
	"github.com/shopims/shopims-backend/internal/service"
	"github.com/shopims/shopims-backend/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	now := time.Now()
	year := flag.Int("year", now.Year(), "report year")
	month := flag.Int("month", int(now.Month()), "report month (1-12)")
	flag.Parse()

	if *month < 1 || *month > 12 {
		log.Fatalf("invalid month: %d", *month)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	reportService := service.NewReportService(
		repository.NewPurchaseRepo(db),
		repository.NewSaleRepo(db),
		repository.NewProductRepo(db),
		repository.NewShareRepo(db),
		repository.NewReportRepo(db),
	)

	row, err := reportService.GenerateMonthlyReport(*year, time.Month(*month), "monthly-report-cli")
	if err != nil {
		log.Fatalf("report generation failed: %v", err)
	}

	log.Printf("Report saved for %s: purchases=%s sales=%s profit=%s (%d sales)",
		row.Month.Format("2006-01"),
		row.TotalPurchaseAmount.StringFixed(2),
		row.TotalSalesAmount.StringFixed(2),
		row.TotalProfit.StringFixed(2),
		row.TotalSalesCount,
	)
}
