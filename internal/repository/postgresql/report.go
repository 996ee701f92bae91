package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// PayrollRows implements report.ReportRepository.
func (r *reportRepositoryImpl) PayrollRows(ctx context.Context, month, year int) ([]report.PayrollRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.employee_code, u.name, p.month, p.year, p.monthly_salary,
			   p.total_allowance, p.total_deduction, p.net_salary, p.created_at
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		JOIN users u ON u.id = e.user_id
		WHERE p.month = $1 AND p.year = $2
		ORDER BY u.name
	`
	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]report.PayrollRow, 0)
	for rows.Next() {
		var row report.PayrollRow
		if err := rows.Scan(
			&row.EmployeeCode,
			&row.EmployeeName,
			&row.Month,
			&row.Year,
			&row.MonthlySalary,
			&row.TotalAllowance,
			&row.TotalDeduction,
			&row.NetSalary,
			&row.GeneratedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// LeaveRows implements report.ReportRepository.
func (r *reportRepositoryImpl) LeaveRows(ctx context.Context, from, to time.Time) ([]report.LeaveRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.employee_code, u.name, l.leave_type, l.start_date, l.end_date,
			   l.leave_days, l.status, l.reason, approver.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		JOIN users u ON u.id = e.user_id
		LEFT JOIN users approver ON approver.id = l.approved_by
		WHERE l.start_date BETWEEN $1 AND $2
		ORDER BY l.start_date, u.name
	`
	rows, err := q.Query(ctx, query, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]report.LeaveRow, 0)
	for rows.Next() {
		var row report.LeaveRow
		if err := rows.Scan(
			&row.EmployeeCode,
			&row.EmployeeName,
			&row.LeaveType,
			&row.StartDate,
			&row.EndDate,
			&row.LeaveDays,
			&row.Status,
			&row.Reason,
			&row.ApprovedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
