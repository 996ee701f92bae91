package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role, u.role_id,
		   u.phone, u.address, u.city, u.state, u.country, u.zip_code,
		   u.created_at, u.updated_at, e.id, e.status, r.name, d.name, g.name
	FROM users u
	LEFT JOIN employees e ON e.user_id = u.id
	LEFT JOIN roles r ON r.id = u.role_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.RoleID,
		&u.Contact.Phone,
		&u.Contact.Address,
		&u.Contact.City,
		&u.Contact.State,
		&u.Contact.Country,
		&u.Contact.ZipCode,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.EmployeeID,
		&u.EmployeeStatus,
		&u.RoleName,
		&u.DepartmentName,
		&u.DesignationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, userSelect+` WHERE LOWER(u.email) = LOWER($1)`, email))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (name, email, password_hash, role, role_id, phone, address, city, state, country, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.RoleID,
		newUser.Contact.Phone,
		newUser.Contact.Address,
		newUser.Contact.City,
		newUser.Contact.State,
		newUser.Contact.Country,
		newUser.Contact.ZipCode,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}
	return newUser, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	return exists, err
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(u.name ILIKE $%d OR u.email ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("u.role = $%d", argIndex))
		args = append(args, filter.Role)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := userSelect + whereClause + fmt.Sprintf(" ORDER BY u.name LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, role_id = $4, phone = $5, address = $6,
			city = $7, state = $8, country = $9, zip_code = $10, updated_at = NOW()
		WHERE id = $11
	`
	tag, err := q.Exec(ctx, query,
		u.Name,
		u.Email,
		u.Role,
		u.RoleID,
		u.Contact.Phone,
		u.Contact.Address,
		u.Contact.City,
		u.Contact.State,
		u.Contact.Country,
		u.Contact.ZipCode,
		u.ID,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return user.ErrUserEmailExists
		case isForeignKeyViolation(err):
			return user.ErrCustomRoleNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// CustomCapabilities implements user.UserRepository.
func (r *userRepositoryImpl) CustomCapabilities(ctx context.Context, userID string) ([]user.Capability, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.resource, p.action
		FROM users u
		JOIN role_permissions rp ON rp.role_id = u.role_id
		JOIN permissions p ON p.id = rp.permission_id
		WHERE u.id = $1
		ORDER BY p.resource, p.action
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var caps []user.Capability
	for rows.Next() {
		var resource, action string
		if err := rows.Scan(&resource, &action); err != nil {
			return nil, err
		}
		caps = append(caps, user.NewCapability(resource, action))
	}
	return caps, rows.Err()
}
