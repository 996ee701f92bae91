package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

const designationSelect = `
	SELECT g.id, g.name, g.classification, g.created_at, g.updated_at,
		   (SELECT COUNT(*) FROM employees e WHERE e.designation_id = g.id) AS employee_count
	FROM designations g
`

func scanDesignation(row pgx.Row) (designation.Designation, error) {
	var d designation.Designation
	err := row.Scan(&d.ID, &d.Name, &d.Classification, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCount)
	return d, err
}

// Create implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO designations (name, classification)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, d.Name, d.Classification).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return designation.Designation{}, designation.ErrDesignationNameExists
		}
		return designation.Designation{}, err
	}
	return d, nil
}

// GetByID implements designation.DesignationRepository.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDesignation(q.QueryRow(ctx, designationSelect+` WHERE g.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return designation.Designation{}, designation.ErrDesignationNotFound
	}
	return d, err
}

// List implements designation.DesignationRepository.
func (r *designationRepositoryImpl) List(ctx context.Context, filter designation.ListFilter) ([]designation.Designation, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	where := ` WHERE ($1 = '' OR g.name ILIKE '%' || $1 || '%' OR g.classification ILIKE '%' || $1 || '%')`

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM designations g`+where, filter.Search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := designationSelect + where + ` ORDER BY g.name LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, filter.Search, filter.PageSize, (filter.Page-1)*filter.PageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	designations := make([]designation.Designation, 0)
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, 0, err
		}
		designations = append(designations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return designations, total, nil
}

// ExistsByName implements designation.DesignationRepository.
func (r *designationRepositoryImpl) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM designations WHERE LOWER(name) = LOWER($1) AND id::text <> $2)`
	var exists bool
	err := q.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	return exists, err
}

// Update implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Update(ctx context.Context, d designation.Designation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE designations
		SET name = $1, classification = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, d.Name, d.Classification, d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return designation.ErrDesignationNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

// Delete implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}
