package designation

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateDesignationRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Classification *string `json:"classification,omitempty" validate:"omitempty,max=100"`
}

func (r *CreateDesignationRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != "" && validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}

type UpdateDesignationRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Classification *string `json:"classification,omitempty" validate:"omitempty,max=100"`
}

func (r *UpdateDesignationRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	return errs.Err()
}

type ListFilter struct {
	Search   string
	Page     int
	PageSize int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 10
	}
}

type DesignationResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Classification *string   `json:"classification,omitempty"`
	EmployeeCount  int       `json:"employee_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:             d.ID,
		Name:           d.Name,
		Classification: d.Classification,
		EmployeeCount:  d.EmployeeCount,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type ListResponse struct {
	Designations []DesignationResponse `json:"designations"`
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}
