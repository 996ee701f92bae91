package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, which must point at a database
// with migrations/001_init.sql applied. The test is skipped when unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{})
	require.NoError(t, err)

	truncateAll(t, db)
	t.Cleanup(func() {
		truncateAll(t, db)
		db.Close()
	})
	return db
}

func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()

	tables := []string{
		"notifications",
		"appraisals",
		"payroll_record_components",
		"payroll_records",
		"payroll_component_types",
		"attendances",
		"leave_requests",
		"leave_balances",
		"employees",
		"departments",
		"designations",
		"users",
		"roles",
	}
	_, err := db.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	require.NoError(t, err)
}

// seedEmployee inserts a user with an ACTIVE employee and returns
// (userID, employeeID).
func seedEmployee(t *testing.T, db *database.DB, email, code string) (string, string) {
	t.Helper()
	ctx := context.Background()

	var userID, employeeID string
	err := db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, 'x', 'EMPLOYEE')
		RETURNING id
	`, "User "+code, email).Scan(&userID)
	require.NoError(t, err)

	err = db.QueryRow(ctx, `
		INSERT INTO employees (user_id, employee_code, salary, joining_date)
		VALUES ($1, $2, 120000, CURRENT_DATE)
		RETURNING id
	`, userID, code).Scan(&employeeID)
	require.NoError(t, err)

	return userID, employeeID
}
