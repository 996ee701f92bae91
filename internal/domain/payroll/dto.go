package payroll

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ComponentInput struct {
	ComponentTypeID string           `json:"component_type_id" validate:"required"`
	Percent         *decimal.Decimal `json:"percent,omitempty"`
}

type GenerateRequest struct {
	EmployeeID string           `json:"employee_id" validate:"required"`
	Month      int              `json:"month" validate:"required,gte=1,lte=12"`
	Year       int              `json:"year" validate:"required,gte=2000,lte=2100"`
	Components []ComponentInput `json:"components" validate:"dive"`
}

func (r *GenerateRequest) Validate() error {
	errs := validator.Struct(r)
	for _, c := range r.Components {
		if c.Percent != nil && (c.Percent.IsNegative() || c.Percent.GreaterThan(decimal.NewFromInt(100))) {
			errs.Add("components", "percent must be between 0 and 100")
			break
		}
	}
	return errs.Err()
}

type CreateComponentTypeRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Type        string          `json:"type" validate:"required,oneof=ALLOWANCE DEDUCTION"`
	Description *string         `json:"description,omitempty"`
	Percent     decimal.Decimal `json:"percent"`
}

func (r *CreateComponentTypeRequest) Validate() error {
	errs := validator.Struct(r)
	validatePercent(&errs, r.Percent)
	return errs.Err()
}

type UpdateComponentTypeRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Type        *string          `json:"type,omitempty" validate:"omitempty,oneof=ALLOWANCE DEDUCTION"`
	Description *string          `json:"description,omitempty"`
	Percent     *decimal.Decimal `json:"percent,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (r *UpdateComponentTypeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Percent != nil {
		validatePercent(&errs, *r.Percent)
	}
	return errs.Err()
}

func validatePercent(errs *validator.ValidationErrors, p decimal.Decimal) {
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		errs.Add("percent", "percent must be between 0 and 100")
	}
}

type ListFilter struct {
	EmployeeID string
	Month      int
	Year       int
	Page       int
	PageSize   int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

type ComponentTypeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        ComponentKind   `json:"type"`
	Description *string         `json:"description,omitempty"`
	Percent     decimal.Decimal `json:"percent"`
	IsActive    bool            `json:"is_active"`
}

func ToComponentTypeResponse(c ComponentType) ComponentTypeResponse {
	return ComponentTypeResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Kind,
		Description: c.Description,
		Percent:     c.Percent,
		IsActive:    c.IsActive,
	}
}

type ComponentAmount struct {
	ComponentTypeID string          `json:"component_type_id"`
	Name            string          `json:"name"`
	Type            ComponentKind   `json:"type"`
	Percent         decimal.Decimal `json:"percent"`
	Amount          decimal.Decimal `json:"amount"`
}

type RecordResponse struct {
	ID             string            `json:"id"`
	EmployeeID     string            `json:"employee_id"`
	EmployeeName   string            `json:"employee_name,omitempty"`
	Month          int               `json:"month"`
	Year           int               `json:"year"`
	MonthlySalary  decimal.Decimal   `json:"monthly_salary"`
	TotalAllowance decimal.Decimal   `json:"total_allowance"`
	TotalDeduction decimal.Decimal   `json:"total_deduction"`
	NetSalary      decimal.Decimal   `json:"net_salary"`
	Components     []ComponentAmount `json:"components"`
	CreatedAt      time.Time         `json:"created_at"`
}

func ToRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		Month:          r.Month,
		Year:           r.Year,
		MonthlySalary:  r.MonthlySalary,
		TotalAllowance: r.TotalAllowance,
		TotalDeduction: r.TotalDeduction,
		NetSalary:      r.NetSalary,
		Components:     toAmounts(r.Components),
		CreatedAt:      r.CreatedAt,
	}
}

func toAmounts(components []RecordComponent) []ComponentAmount {
	out := make([]ComponentAmount, 0, len(components))
	for _, c := range components {
		out = append(out, ComponentAmount{
			ComponentTypeID: c.ComponentTypeID,
			Name:            c.Name,
			Type:            c.Kind,
			Percent:         c.Percent,
			Amount:          c.Amount,
		})
	}
	return out
}

type PreviewResponse struct {
	EmployeeID    string            `json:"employee_id"`
	MonthlySalary decimal.Decimal   `json:"monthly_salary"`
	NetSalary     decimal.Decimal   `json:"net_salary"`
	Components    []ComponentAmount `json:"components"`
}

func ToPreviewResponse(employeeID string, c Calculation) PreviewResponse {
	return PreviewResponse{
		EmployeeID:    employeeID,
		MonthlySalary: c.MonthlySalary,
		NetSalary:     c.NetSalary,
		Components:    toAmounts(c.Components),
	}
}

type ListResponse struct {
	Records    []RecordResponse `json:"records"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// Payslip is a rendered document ready for download.
type Payslip struct {
	Filename string
	Content  []byte
}
