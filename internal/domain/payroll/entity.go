package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentKind enum
type ComponentKind string

const (
	KindAllowance ComponentKind = "ALLOWANCE"
	KindDeduction ComponentKind = "DEDUCTION"
)

func (k ComponentKind) IsValid() bool {
	return k == KindAllowance || k == KindDeduction
}

// ComponentType - master payroll component, a percentage of monthly salary
type ComponentType struct {
	ID          string
	Name        string
	Kind        ComponentKind
	Description *string
	Percent     decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Record - generated payroll for one employee and period. Immutable once stored.
type Record struct {
	ID             string
	EmployeeID     string
	Month          int
	Year           int
	AnnualSalary   decimal.Decimal
	MonthlySalary  decimal.Decimal
	TotalAllowance decimal.Decimal
	TotalDeduction decimal.Decimal
	NetSalary      decimal.Decimal
	Components     []RecordComponent
	CreatedAt      time.Time

	// Join
	EmployeeName string
	EmployeeCode string
}

// RecordComponent - snapshot of a component at generation time
type RecordComponent struct {
	ID              string
	RecordID        string
	ComponentTypeID string
	Name            string
	Kind            ComponentKind
	Percent         decimal.Decimal
	Amount          decimal.Decimal
}
