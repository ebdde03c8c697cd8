package report

import (
	"time"

	"go-wfm/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{
		ReportService: reportService,
	}
}

func (ctrl *ReportController) ExportPayroll(c *fiber.Ctx) error {
	input, err := parseExportQuery(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	data, filename, err := ctrl.ReportService.ExportPayrollReport(c.Context(), input)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return sendFile(c, data, filename)
}

func (ctrl *ReportController) ExportTimesheets(c *fiber.Ctx) error {
	input, err := parseExportQuery(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	data, filename, err := ctrl.ReportService.ExportTimesheetReport(c.Context(), input)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return sendFile(c, data, filename)
}

func parseExportQuery(c *fiber.Ctx) (ExportInput, error) {
	input := ExportInput{Format: c.Query("format", FormatXLSX)}

	start, err := time.Parse("2006-01-02", c.Query("period_start"))
	if err != nil {
		return input, apperr.Validation("invalid period_start, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", c.Query("period_end"))
	if err != nil {
		return input, apperr.Validation("invalid period_end, expected YYYY-MM-DD")
	}

	input.PeriodStart = start
	input.PeriodEnd = end
	return input, nil
}

func sendFile(c *fiber.Ctx, data []byte, filename string) error {
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if len(filename) > 4 && filename[len(filename)-4:] == ".csv" {
		contentType = "text/csv"
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
