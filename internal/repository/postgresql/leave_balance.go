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

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `id, employee_id, year, leave_type, total_leaves, used_leaves, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(&b.ID, &b.EmployeeID, &b.Year, &b.LeaveType, &b.TotalLeaves, &b.UsedLeaves, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Get implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID string, year int, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances WHERE employee_id = $1 AND year = $2 AND leave_type = $3`
	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, year, leaveType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// ListByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances WHERE employee_id = $1 AND year = $2 ORDER BY leave_type`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// Upsert implements leave.LeaveBalanceRepository. The total may not drop
// below what is already used.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, year, leave_type, total_leaves, used_leaves)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (employee_id, year, leave_type)
		DO UPDATE SET total_leaves = EXCLUDED.total_leaves, updated_at = NOW()
		WHERE leave_balances.used_leaves <= EXCLUDED.total_leaves
		RETURNING ` + leaveBalanceColumns
	b, err := scanLeaveBalance(q.QueryRow(ctx, query, balance.EmployeeID, balance.Year, balance.LeaveType, balance.TotalLeaves))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrTotalBelowUsed
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// CreateMissing implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) CreateMissing(ctx context.Context, balances []leave.LeaveBalance) (int, error) {
	if len(balances) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(balances))
	valueArgs := make([]interface{}, 0, len(balances)*4)
	for i, b := range balances {
		base := i * 4
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, 0)", base+1, base+2, base+3, base+4))
		valueArgs = append(valueArgs, b.EmployeeID, b.Year, b.LeaveType, b.TotalLeaves)
	}

	query := fmt.Sprintf(`
		INSERT INTO leave_balances (employee_id, year, leave_type, total_leaves, used_leaves)
		VALUES %s
		ON CONFLICT (employee_id, year, leave_type) DO NOTHING
	`, strings.Join(valueStrings, ", "))

	tag, err := q.Exec(ctx, query, valueArgs...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// AdjustUsed implements leave.LeaveBalanceRepository. The bounds check and
// the write happen in one statement so concurrent approvals cannot overdraw.
func (r *leaveBalanceRepositoryImpl) AdjustUsed(ctx context.Context, employeeID string, year int, leaveType leave.LeaveType, delta int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_leaves = used_leaves + $4, updated_at = NOW()
		WHERE employee_id = $1 AND year = $2 AND leave_type = $3
		  AND used_leaves + $4 <= total_leaves
		  AND used_leaves + $4 >= 0
	`
	tag, err := q.Exec(ctx, query, employeeID, year, leaveType, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	err = q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM leave_balances WHERE employee_id = $1 AND year = $2 AND leave_type = $3)`,
		employeeID, year, leaveType,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return leave.ErrLeaveBalanceNotFound
	}
	return leave.ErrInsufficientBalance
}
