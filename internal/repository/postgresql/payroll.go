package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== COMPONENT TYPES ==========

type componentTypeRepositoryImpl struct {
	db *database.DB
}

func NewComponentTypeRepository(db *database.DB) payroll.ComponentTypeRepository {
	return &componentTypeRepositoryImpl{db: db}
}

const componentTypeColumns = `id, name, kind, description, percent, is_active, created_at, updated_at`

func scanComponentType(row pgx.Row) (payroll.ComponentType, error) {
	var c payroll.ComponentType
	err := row.Scan(&c.ID, &c.Name, &c.Kind, &c.Description, &c.Percent, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func collectComponentTypes(rows pgx.Rows) ([]payroll.ComponentType, error) {
	defer rows.Close()

	types := make([]payroll.ComponentType, 0)
	for rows.Next() {
		c, err := scanComponentType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, c)
	}
	return types, rows.Err()
}

// Create implements payroll.ComponentTypeRepository.
func (r *componentTypeRepositoryImpl) Create(ctx context.Context, c payroll.ComponentType) (payroll.ComponentType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_component_types (name, kind, description, percent, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + componentTypeColumns
	return scanComponentType(q.QueryRow(ctx, query, c.Name, c.Kind, c.Description, c.Percent, c.IsActive))
}

// GetByID implements payroll.ComponentTypeRepository.
func (r *componentTypeRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.ComponentType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + componentTypeColumns + ` FROM payroll_component_types WHERE id = $1`
	c, err := scanComponentType(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.ComponentType{}, payroll.ErrComponentTypeNotFound
	}
	return c, err
}

// GetByIDs implements payroll.ComponentTypeRepository. Unknown ids are
// silently absent from the result.
func (r *componentTypeRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]payroll.ComponentType, error) {
	if len(ids) == 0 {
		return []payroll.ComponentType{}, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + componentTypeColumns + ` FROM payroll_component_types WHERE id::text = ANY($1) ORDER BY name`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return collectComponentTypes(rows)
}

// List implements payroll.ComponentTypeRepository.
func (r *componentTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]payroll.ComponentType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + componentTypeColumns + ` FROM payroll_component_types`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY kind, name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectComponentTypes(rows)
}

// Update implements payroll.ComponentTypeRepository.
func (r *componentTypeRepositoryImpl) Update(ctx context.Context, c payroll.ComponentType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_component_types
		SET name = $1, kind = $2, description = $3, percent = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query, c.Name, c.Kind, c.Description, c.Percent, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrComponentTypeNotFound
	}
	return nil
}

// Delete implements payroll.ComponentTypeRepository.
func (r *componentTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_component_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payroll.ErrComponentTypeInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrComponentTypeNotFound
	}
	return nil
}

// IsReferenced implements payroll.ComponentTypeRepository.
func (r *componentTypeRepositoryImpl) IsReferenced(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payroll_record_components WHERE component_type_id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// ========== RECORDS ==========

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) payroll.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

const recordSelect = `
	SELECT p.id, p.employee_id, p.month, p.year, p.annual_salary, p.monthly_salary,
		   p.total_allowance, p.total_deduction, p.net_salary, p.created_at,
		   u.name, e.employee_code
	FROM payroll_records p
	JOIN employees e ON e.id = p.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Month,
		&rec.Year,
		&rec.AnnualSalary,
		&rec.MonthlySalary,
		&rec.TotalAllowance,
		&rec.TotalDeduction,
		&rec.NetSalary,
		&rec.CreatedAt,
		&rec.EmployeeName,
		&rec.EmployeeCode,
	)
	return rec, err
}

// Create implements payroll.RecordRepository. Callers run it inside a
// transaction so the record and its components land together.
func (r *recordRepositoryImpl) Create(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, month, year, annual_salary, monthly_salary,
			total_allowance, total_deduction, net_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Month, rec.Year, rec.AnnualSalary, rec.MonthlySalary,
		rec.TotalAllowance, rec.TotalDeduction, rec.NetSalary,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return payroll.Record{}, payroll.ErrEmployeeHasNoSalary
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	if len(rec.Components) == 0 {
		return rec, nil
	}

	valueStrings := make([]string, 0, len(rec.Components))
	valueArgs := make([]interface{}, 0, len(rec.Components)*6)
	for i, c := range rec.Components {
		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs, rec.ID, c.ComponentTypeID, c.Name, c.Kind, c.Percent, c.Amount)
	}

	compQuery := `
		INSERT INTO payroll_record_components (record_id, component_type_id, name, kind, percent, amount)
		VALUES ` + strings.Join(valueStrings, ", ") + `
		RETURNING id
	`
	rows, err := q.Query(ctx, compQuery, valueArgs...)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to create payroll components: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&rec.Components[i].ID); err != nil {
			return payroll.Record{}, err
		}
		rec.Components[i].RecordID = rec.ID
		i++
	}
	if err := rows.Err(); err != nil {
		if isForeignKeyViolation(err) {
			return payroll.Record{}, payroll.ErrComponentTypeNotFound
		}
		return payroll.Record{}, err
	}

	return rec, nil
}

// GetByID implements payroll.RecordRepository.
func (r *recordRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, recordSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, err
	}

	components, err := r.componentsByRecords(ctx, []string{rec.ID})
	if err != nil {
		return payroll.Record{}, err
	}
	rec.Components = components[rec.ID]
	return rec, nil
}

// List implements payroll.RecordRepository.
func (r *recordRepositoryImpl) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.Month > 0 {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", argIndex))
		args = append(args, filter.Month)
		argIndex++
	}
	if filter.Year > 0 {
		conditions = append(conditions, fmt.Sprintf("p.year = $%d", argIndex))
		args = append(args, filter.Year)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_records p`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := recordSelect + whereClause +
		fmt.Sprintf(" ORDER BY p.year DESC, p.month DESC, u.name LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]payroll.Record, 0)
	ids := make([]string, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
		ids = append(ids, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	components, err := r.componentsByRecords(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range records {
		records[i].Components = components[records[i].ID]
	}
	return records, total, nil
}

func (r *recordRepositoryImpl) componentsByRecords(ctx context.Context, recordIDs []string) (map[string][]payroll.RecordComponent, error) {
	result := make(map[string][]payroll.RecordComponent, len(recordIDs))
	if len(recordIDs) == 0 {
		return result, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, record_id, component_type_id, name, kind, percent, amount
		FROM payroll_record_components
		WHERE record_id::text = ANY($1)
		ORDER BY kind, name
	`
	rows, err := q.Query(ctx, query, recordIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c payroll.RecordComponent
		if err := rows.Scan(&c.ID, &c.RecordID, &c.ComponentTypeID, &c.Name, &c.Kind, &c.Percent, &c.Amount); err != nil {
			return nil, err
		}
		result[c.RecordID] = append(result[c.RecordID], c)
	}
	return result, rows.Err()
}
