package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/employee"
	"go-wfm/internal/features/payment"
	"go-wfm/internal/features/timesheet"
	"go-wfm/internal/features/user"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

type ExportInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Format      string
}

type ReportService interface {
	ExportPayrollReport(ctx context.Context, input ExportInput) ([]byte, string, error)
	ExportTimesheetReport(ctx context.Context, input ExportInput) ([]byte, string, error)
}

type ReportServiceImpl struct {
	PaymentRepo   payment.PaymentRepository
	TimesheetRepo timesheet.TimesheetRepository
	EmployeeRepo  employee.EmployeeRepository
	UserRepo      user.UserRepository
}

func NewReportService(paymentRepo payment.PaymentRepository, timesheetRepo timesheet.TimesheetRepository, employeeRepo employee.EmployeeRepository, userRepo user.UserRepository) ReportService {
	return &ReportServiceImpl{
		PaymentRepo:   paymentRepo,
		TimesheetRepo: timesheetRepo,
		EmployeeRepo:  employeeRepo,
		UserRepo:      userRepo,
	}
}

var payrollColumns = []string{"Employee", "Period Start", "Period End", "Total Hours", "Hourly Rate", "Amount", "Status", "Paid At"}

func (s *ReportServiceImpl) ExportPayrollReport(ctx context.Context, input ExportInput) ([]byte, string, error) {
	if err := validateInput(&input); err != nil {
		return nil, "", err
	}

	filter := map[string]interface{}{
		"period_start": map[string]interface{}{"$gte": input.PeriodStart},
		"period_end":   map[string]interface{}{"$lte": input.PeriodEnd},
	}
	payments, _, err := s.PaymentRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, "", err
	}

	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		paidAt := ""
		if p.PaidAt != nil {
			paidAt = p.PaidAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			s.employeeName(ctx, p.EmployeeID),
			p.PeriodStart.Format("2006-01-02"),
			p.PeriodEnd.Format("2006-01-02"),
			strconv.FormatFloat(p.TotalHours, 'f', 2, 64),
			strconv.FormatFloat(p.HourlyRate, 'f', 2, 64),
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			p.Status,
			paidAt,
		})
	}

	name := fmt.Sprintf("payroll_%s_%s", input.PeriodStart.Format("20060102"), input.PeriodEnd.Format("20060102"))
	return s.render(input.Format, "Payroll", name, payrollColumns, rows)
}

var timesheetColumns = []string{"Employee", "Period Start", "Period End", "Total Hours", "Hourly Rate", "Total Earnings", "Status"}

func (s *ReportServiceImpl) ExportTimesheetReport(ctx context.Context, input ExportInput) ([]byte, string, error) {
	if err := validateInput(&input); err != nil {
		return nil, "", err
	}

	filter := map[string]interface{}{
		"period_start": map[string]interface{}{"$gte": input.PeriodStart},
		"period_end":   map[string]interface{}{"$lte": input.PeriodEnd},
	}
	sheets, _, err := s.TimesheetRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, "", err
	}

	rows := make([][]string, 0, len(sheets))
	for _, sheet := range sheets {
		rows = append(rows, []string{
			s.employeeName(ctx, sheet.EmployeeID),
			sheet.PeriodStart.Format("2006-01-02"),
			sheet.PeriodEnd.Format("2006-01-02"),
			strconv.FormatFloat(sheet.TotalHours, 'f', 2, 64),
			strconv.FormatFloat(sheet.HourlyRate, 'f', 2, 64),
			strconv.FormatFloat(sheet.TotalEarnings, 'f', 2, 64),
			sheet.Status,
		})
	}

	name := fmt.Sprintf("timesheets_%s_%s", input.PeriodStart.Format("20060102"), input.PeriodEnd.Format("20060102"))
	return s.render(input.Format, "Timesheets", name, timesheetColumns, rows)
}

func (s *ReportServiceImpl) render(format, sheetName, name string, columns []string, rows [][]string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := renderCSV(columns, rows)
		if err != nil {
			return nil, "", err
		}
		return data, name + ".csv", nil
	case FormatXLSX:
		data, err := renderExcel(sheetName, columns, rows)
		if err != nil {
			return nil, "", err
		}
		return data, name + ".xlsx", nil
	default:
		return nil, "", apperr.Validation("unsupported format %q", format)
	}
}

func renderCSV(columns []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderExcel(sheetName string, columns []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func validateInput(input *ExportInput) error {
	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return apperr.Validation("period_start and period_end are required")
	}
	if !input.PeriodEnd.After(input.PeriodStart) {
		return apperr.Validation("period_end must be after period_start")
	}
	if input.Format == "" {
		input.Format = FormatXLSX
	}
	return nil
}

func (s *ReportServiceImpl) employeeName(ctx context.Context, employeeID primitive.ObjectID) string {
	emp, err := s.EmployeeRepo.FindByID(ctx, employeeID)
	if err != nil || emp.UserID == nil {
		return employeeID.Hex()
	}
	usr, err := s.UserRepo.FindByID(ctx, *emp.UserID)
	if err != nil {
		return employeeID.Hex()
	}
	return usr.FullName
}
