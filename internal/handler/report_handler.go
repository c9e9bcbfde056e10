package handler

import (
	"bytes"
	"strconv"
	"time"

	"github.com/shopims/shopims-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDailyReport computes the snapshot for the current date.
func (h *ReportHandler) GetDailyReport(c *fiber.Ctx) error {
	snapshot, err := h.service.DailyReport(time.Now())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(snapshot)
}

// monthYearQuery reads month/year query params, defaulting to the current
// month.
func monthYearQuery(c *fiber.Ctx) (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			return 0, 0, err
		}
		year = parsed
	}
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, strconv.ErrRange
		}
		month = time.Month(parsed)
	}
	return year, month, nil
}

// GetMonthlyReport computes the snapshot for an arbitrary month without
// persisting it.
func (h *ReportHandler) GetMonthlyReport(c *fiber.Ctx) error {
	year, month, err := monthYearQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month/year"})
	}

	snapshot, err := h.service.MonthlyReport(year, month)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(snapshot)
}

// GenerateMonthlyReport builds and upserts the persisted row for the month.
func (h *ReportHandler) GenerateMonthlyReport(c *fiber.Ctx) error {
	year, month, err := monthYearQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month/year"})
	}

	row, err := h.service.GenerateMonthlyReport(year, month, getUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Monthly report saved", "data": row})
}

func (h *ReportHandler) GetMonthlyReports(c *fiber.Ctx) error {
	list, err := h.service.ListMonthlyReports()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(list)
}

// ExportReports streams the persisted report rows as a CSV download.
func (h *ReportHandler) ExportReports(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportMonthlyReportsCSV(&buf); err != nil {
		return respondErr(c, err)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="monthly_reports.csv"`)
	return c.Send(buf.Bytes())
}
