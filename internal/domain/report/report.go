package report

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("invalid report period")

// Period selects one calendar month.
type Period struct {
	Month int `json:"month" validate:"required,gte=1,lte=12"`
	Year  int `json:"year" validate:"required,gte=2000,lte=2100"`
}

func (p *Period) Validate() error {
	return validator.Struct(p).Err()
}

// Range returns the first and last day of the period.
func (p Period) Range() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

type PayrollRow struct {
	EmployeeCode   string
	EmployeeName   string
	Month          int
	Year           int
	MonthlySalary  decimal.Decimal
	TotalAllowance decimal.Decimal
	TotalDeduction decimal.Decimal
	NetSalary      decimal.Decimal
	GeneratedAt    time.Time
}

type LeaveRow struct {
	EmployeeCode string
	EmployeeName string
	LeaveType    string
	StartDate    time.Time
	EndDate      time.Time
	LeaveDays    int
	Status       string
	Reason       string
	ApprovedBy   *string
}

// Workbook is a rendered spreadsheet ready for download.
type Workbook struct {
	Filename string
	Content  []byte
}

type ReportRepository interface {
	PayrollRows(ctx context.Context, month, year int) ([]PayrollRow, error)
	// LeaveRows returns leaves starting within [from, to].
	LeaveRows(ctx context.Context, from, to time.Time) ([]LeaveRow, error)
}

type ReportService interface {
	PayrollWorkbook(ctx context.Context, period Period) (Workbook, error)
	LeavesWorkbook(ctx context.Context, period Period) (Workbook, error)
}
