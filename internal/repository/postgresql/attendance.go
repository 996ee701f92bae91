package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.attendance_date, a.check_in, a.check_out, a.total_hours,
		   a.status, a.created_at, a.updated_at, u.name
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
	JOIN users u ON u.id = e.user_id
`

const attendanceReturning = `
	RETURNING id, employee_id, attendance_date, check_in, check_out, total_hours, status, created_at, updated_at
`

func scanAttendance(row pgx.Row, withName bool) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := []interface{}{
		&a.ID,
		&a.EmployeeID,
		&a.AttendanceDate,
		&a.CheckIn,
		&a.CheckOut,
		&a.TotalHours,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
	if withName {
		dest = append(dest, &a.EmployeeName)
	}
	err := row.Scan(dest...)
	return a, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows, true)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id), true)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, err
}

// GetByEmployeeDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.employee_id = $1 AND a.attendance_date = $2`
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateOnly(date)), true)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, err
}

// CreateCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CreateCheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, attendance_date, check_in, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
	` + attendanceReturning
	created, err := scanAttendance(q.QueryRow(ctx, query, a.EmployeeID, dateOnly(a.AttendanceDate), a.CheckIn, a.Status), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, err
	}
	return created, true, nil
}

// ClaimCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ClaimCheckIn(ctx context.Context, id string, checkIn time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $1, status = 'PRESENT', updated_at = NOW()
		WHERE id = $2 AND check_in IS NULL
	`
	tag, err := q.Exec(ctx, query, checkIn, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// CloseOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CloseOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1, total_hours = $2, updated_at = NOW()
		WHERE id = $3 AND check_out IS NULL
	`
	tag, err := q.Exec(ctx, query, checkOut, totalHours, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET attendance_date = $1, check_in = $2, check_out = $3, total_hours = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query, dateOnly(a.AttendanceDate), a.CheckIn, a.CheckOut, a.TotalHours, a.Status, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// UpsertStatus implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, attendance_date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, attendance_date)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
	` + attendanceReturning
	return scanAttendance(q.QueryRow(ctx, query, employeeID, dateOnly(date), status), false)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1 AND a.attendance_date BETWEEN $2 AND $3
		ORDER BY a.attendance_date DESC
	`
	rows, err := q.Query(ctx, query, employeeID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}
	return collectAttendances(rows)
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	var conditions []string
	var args []interface{}
	argIndex := 1

	add := func(cond string, arg interface{}) {
		conditions = append(conditions, strings.ReplaceAll(cond, "$?", fmt.Sprintf("$%d", argIndex)))
		args = append(args, arg)
		argIndex++
	}

	if filter.EmployeeID != "" {
		add("a.employee_id = $?", filter.EmployeeID)
	}
	if filter.ManagerID != "" {
		add("e.manager_id = $?", filter.ManagerID)
	}
	if filter.Status != "" {
		add("a.status = $?", filter.Status)
	}
	if filter.Search != "" {
		add("(u.name ILIKE $? OR e.employee_code ILIKE $?)", "%"+filter.Search+"%")
	}
	if !filter.From.IsZero() {
		add("a.attendance_date >= $?", dateOnly(filter.From))
	}
	if !filter.To.IsZero() {
		add("a.attendance_date <= $?", dateOnly(filter.To))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
	` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := attendanceSelect + whereClause +
		fmt.Sprintf(" ORDER BY a.attendance_date DESC, u.name LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	records, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// MarkAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, attendance_date, status)
		SELECT e.id, $1::date,
			CASE WHEN EXISTS (
				SELECT 1 FROM leave_requests lr
				WHERE lr.employee_id = e.id
				  AND lr.status = 'APPROVED'
				  AND $1::date BETWEEN lr.start_date AND lr.end_date
			) THEN 'LEAVE' ELSE 'ABSENT' END
		FROM employees e
		WHERE e.status = 'ACTIVE'
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.attendance_date = $1::date
		  )
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
	`
	tag, err := q.Exec(ctx, query, dateOnly(date))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// dateOnly strips the clock so DATE columns compare on the calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
