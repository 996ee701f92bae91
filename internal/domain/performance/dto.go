package performance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type AddAppraisalRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Goals      string  `json:"goals" validate:"required"`
	Rating     *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comments   *string `json:"comments,omitempty"`
}

func (r *AddAppraisalRequest) Validate() error {
	return validator.Struct(r).Err()
}

type UpdateAppraisalRequest struct {
	Rating   *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comments *string `json:"comments,omitempty"`
}

func (r *UpdateAppraisalRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Rating == nil && (r.Comments == nil || validator.IsEmpty(*r.Comments)) {
		errs.Add("body", "at least rating or comments must be provided")
	}
	return errs.Err()
}

type AppraisalResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	ReviewerID string    `json:"reviewer_id"`
	Goals      string    `json:"goals"`
	Rating     *int      `json:"rating"`
	Comments   *string   `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToResponse(a Appraisal) AppraisalResponse {
	return AppraisalResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ReviewerID: a.ReviewerID,
		Goals:      a.Goals,
		Rating:     a.Rating,
		Comments:   a.Comments,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
