package payslip

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Core PDF fonts are Latin-1 only, so amounts use "Rs." instead of the rupee sign.
const currency = "Rs."

// Render draws a one-page A4 payslip for record.
func Render(record payroll.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(0, 12, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, "Salary Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	rule(pdf)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 8, "Employee Information", "", 1, "L", false, 0, "")

	pair(pdf, "Employee Name:", record.EmployeeName, "Pay Period:", period(record.Month, record.Year))
	pair(pdf, "Employee Code:", record.EmployeeCode, "Annual CTC:", money(record.AnnualSalary))
	pair(pdf, "Generated:", record.CreatedAt.Format("02/01/2006"), "Monthly Salary:", money(record.MonthlySalary))
	pdf.Ln(4)
	rule(pdf)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 8, "Salary Components", "", 1, "L", false, 0, "")

	pdf.SetFillColor(243, 244, 246)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 8, "Component", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "%", "1", 0, "R", true, 0, "")
	pdf.CellFormat(39, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, c := range record.Components {
		pdf.SetTextColor(31, 41, 55)
		pdf.CellFormat(80, 7, c.Name, "1", 0, "L", false, 0, "")
		if c.Kind == payroll.KindAllowance {
			pdf.SetTextColor(16, 185, 129)
			pdf.CellFormat(35, 7, "Allowance", "1", 0, "L", false, 0, "")
		} else {
			pdf.SetTextColor(239, 68, 68)
			pdf.CellFormat(35, 7, "Deduction", "1", 0, "L", false, 0, "")
		}
		pdf.SetTextColor(31, 41, 55)
		pdf.CellFormat(20, 7, c.Percent.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(39, 7, money(c.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	total(pdf, "Total Allowances", money(record.TotalAllowance), 16, 185, 129)
	total(pdf, "Total Deductions", money(record.TotalDeduction), 239, 68, 68)
	pdf.SetFont("Helvetica", "B", 12)
	total(pdf, "NET SALARY", money(record.NetSalary), 31, 41, 55)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(156, 163, 175)
	pdf.CellFormat(0, 5, "This is a computer-generated payslip and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name for a payslip.
func Filename(record payroll.Record) string {
	return fmt.Sprintf("payslip-%s-%d-%d.pdf", record.EmployeeName, record.Month, record.Year)
}

func pair(pdf *gofpdf.Fpdf, lk, lv, rk, rv string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(32, 6, lk, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(55, 6, lv, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(32, 6, rk, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(0, 6, rv, "", 1, "L", false, 0, "")
}

func total(pdf *gofpdf.Fpdf, label, value string, r, g, b int) {
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(135, 8, label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(39, 8, value, "T", 1, "R", false, 0, "")
}

func rule(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(229, 231, 235)
	y := pdf.GetY()
	pdf.Line(18, y, 192, y)
	pdf.Ln(4)
}

func money(d decimal.Decimal) string {
	return currency + " " + d.StringFixed(2)
}

func period(month, year int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d/%d", month, year)
	}
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
