package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason,
		   lr.status, lr.approved_by, lr.leave_days, lr.deducted_days, lr.created_at, lr.updated_at,
		   u.name, e.manager_id
	FROM leave_requests lr
	JOIN employees e ON e.id = lr.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.LeaveDays,
		&lr.DeductedDays,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
		&lr.ManagerID,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status, leave_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.Status,
		request.LeaveDays,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// ListBlocking implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListBlocking(ctx context.Context, employeeID string, excludeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + `
		WHERE lr.employee_id = $1
		  AND lr.status IN ('PENDING', 'APPROVED')
		  AND ($2 = '' OR lr.id::text <> $2)
		ORDER BY lr.start_date
	`
	rows, err := q.Query(ctx, query, employeeID, excludeID)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	var conditions []string
	var args []interface{}
	argIndex := 1

	add := func(cond string, arg interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIndex))
		args = append(args, arg)
		argIndex++
	}

	if filter.EmployeeID != "" {
		add("lr.employee_id = $%d", filter.EmployeeID)
	}
	if filter.ManagerID != "" {
		add("e.manager_id = $%d", filter.ManagerID)
	}
	if filter.Status != "" {
		add("lr.status = $%d", filter.Status)
	}
	if filter.LeaveType != "" {
		add("lr.leave_type = $%d", filter.LeaveType)
	}
	if filter.Year > 0 {
		add("EXTRACT(YEAR FROM lr.start_date) = $%d", filter.Year)
	}
	if filter.Month > 0 {
		add("EXTRACT(MONTH FROM lr.start_date) = $%d", filter.Month)
	}
	if filter.From != nil {
		add("lr.start_date >= $%d", *filter.From)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
	` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := leaveRequestSelect + whereClause +
		fmt.Sprintf(" ORDER BY lr.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateDetails implements leave.LeaveRequestRepository. Only PENDING
// requests are editable.
func (r *leaveRequestRepositoryImpl) UpdateDetails(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET leave_type = $1, start_date = $2, end_date = $3, reason = $4, leave_days = $5, updated_at = NOW()
		WHERE id = $6 AND status = 'PENDING'
	`
	tag, err := q.Exec(ctx, query,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.LeaveDays,
		request.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrStatusChanged
	}
	return nil
}

// CompareAndSetStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CompareAndSetStatus(ctx context.Context, id string, prev, next leave.Status, approvedBy *string, deductedDays int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = COALESCE($2, approved_by), deducted_days = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`
	tag, err := q.Exec(ctx, query, next, approvedBy, deductedDays, id, prev)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrStatusChanged
	}
	return nil
}
