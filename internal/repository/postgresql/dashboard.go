package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountActiveEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'ACTIVE'`).Scan(&n)
	return n, err
}

// CountDepartments implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&n)
	return n, err
}

// RecentJoiners implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) RecentJoiners(ctx context.Context, limit int) ([]dashboard.RecentJoiner, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, u.name, u.email, g.name, e.joining_date
		FROM employees e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN designations g ON g.id = e.designation_id
		WHERE e.status = 'ACTIVE'
		ORDER BY e.joining_date DESC, e.created_at DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dashboard.RecentJoiner, 0, limit)
	for rows.Next() {
		var j dashboard.RecentJoiner
		if err := rows.Scan(&j.EmployeeID, &j.EmployeeCode, &j.Name, &j.Email, &j.Designation, &j.JoiningDate); err != nil {
			return nil, err
		}
		result = append(result, j)
	}
	return result, rows.Err()
}

// CountPendingLeaves implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPendingLeaves(ctx context.Context, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.status = 'PENDING'
		  AND ($1 = '' OR e.manager_id::text = $1)
	`
	var n int64
	err := q.QueryRow(ctx, query, managerID).Scan(&n)
	return n, err
}

// CountAttendance implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountAttendance(ctx context.Context, date time.Time, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.attendance_date = $1::date
		  AND ($2 = '' OR e.manager_id::text = $2)
	`
	var n int64
	err := q.QueryRow(ctx, query, date, managerID).Scan(&n)
	return n, err
}
