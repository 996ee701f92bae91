package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type appraisalRepositoryImpl struct {
	db *database.DB
}

func NewAppraisalRepository(db *database.DB) performance.AppraisalRepository {
	return &appraisalRepositoryImpl{db: db}
}

const appraisalColumns = `id, employee_id, reviewer_id, goals, rating, comments, created_at, updated_at`

func scanAppraisal(row pgx.Row) (performance.Appraisal, error) {
	var a performance.Appraisal
	err := row.Scan(&a.ID, &a.EmployeeID, &a.ReviewerID, &a.Goals, &a.Rating, &a.Comments, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) Create(ctx context.Context, a performance.Appraisal) (performance.Appraisal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO appraisals (employee_id, reviewer_id, goals, rating, comments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + appraisalColumns
	created, err := scanAppraisal(q.QueryRow(ctx, query, a.EmployeeID, a.ReviewerID, a.Goals, a.Rating, a.Comments))
	if err != nil && isForeignKeyViolation(err) {
		return performance.Appraisal{}, performance.ErrAppraisalNotFound
	}
	return created, err
}

// GetByID implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Appraisal, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAppraisal(q.QueryRow(ctx, `SELECT `+appraisalColumns+` FROM appraisals WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return performance.Appraisal{}, performance.ErrAppraisalNotFound
	}
	return a, err
}

// Update implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) Update(ctx context.Context, a performance.Appraisal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE appraisals
		SET rating = $1, comments = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, a.Rating, a.Comments, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrAppraisalNotFound
	}
	return nil
}

// ListByEmployee implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]performance.Appraisal, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + appraisalColumns + ` FROM appraisals WHERE employee_id = $1 ORDER BY created_at DESC`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appraisals := make([]performance.Appraisal, 0)
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, err
		}
		appraisals = append(appraisals, a)
	}
	return appraisals, rows.Err()
}
