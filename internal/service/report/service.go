package report

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
	}
}

var (
	payrollHeader = []interface{}{
		"Employee Code", "Employee Name", "Month", "Year", "Monthly Salary",
		"Total Allowance", "Total Deduction", "Net Salary", "Generated At",
	}
	leaveHeader = []interface{}{
		"Employee Code", "Employee Name", "Leave Type", "Start Date", "End Date",
		"Days", "Status", "Reason", "Approved By",
	}
)

// PayrollWorkbook renders every payroll record of the period as one sheet.
func (s *ReportServiceImpl) PayrollWorkbook(ctx context.Context, period report.Period) (report.Workbook, error) {
	if err := period.Validate(); err != nil {
		return report.Workbook{}, err
	}

	rows, err := s.reportRepo.PayrollRows(ctx, period.Month, period.Year)
	if err != nil {
		return report.Workbook{}, fmt.Errorf("failed to load payroll report: %w", err)
	}

	body := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		body = append(body, []interface{}{
			r.EmployeeCode,
			r.EmployeeName,
			r.Month,
			r.Year,
			r.MonthlySalary.InexactFloat64(),
			r.TotalAllowance.InexactFloat64(),
			r.TotalDeduction.InexactFloat64(),
			r.NetSalary.InexactFloat64(),
			r.GeneratedAt.Format("2006-01-02 15:04"),
		})
	}

	content, err := render("Payroll", payrollHeader, body)
	if err != nil {
		return report.Workbook{}, err
	}
	return report.Workbook{
		Filename: fmt.Sprintf("payroll-%d-%02d.xlsx", period.Year, period.Month),
		Content:  content,
	}, nil
}

// LeavesWorkbook renders every leave request starting within the period.
func (s *ReportServiceImpl) LeavesWorkbook(ctx context.Context, period report.Period) (report.Workbook, error) {
	if err := period.Validate(); err != nil {
		return report.Workbook{}, err
	}

	from, to := period.Range()
	rows, err := s.reportRepo.LeaveRows(ctx, from, to)
	if err != nil {
		return report.Workbook{}, fmt.Errorf("failed to load leave report: %w", err)
	}

	body := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		approvedBy := ""
		if r.ApprovedBy != nil {
			approvedBy = *r.ApprovedBy
		}
		body = append(body, []interface{}{
			r.EmployeeCode,
			r.EmployeeName,
			r.LeaveType,
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			r.LeaveDays,
			r.Status,
			r.Reason,
			approvedBy,
		})
	}

	content, err := render("Leaves", leaveHeader, body)
	if err != nil {
		return report.Workbook{}, err
	}
	return report.Workbook{
		Filename: fmt.Sprintf("leaves-%d-%02d.xlsx", period.Year, period.Month),
		Content:  content,
	}, nil
}

func render(sheet string, header []interface{}, body [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E5E7EB"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range body {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
