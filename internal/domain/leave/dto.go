package leave

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	LeaveType  string `json:"leave_type" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=1000"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	errs := validator.Struct(r)

	if r.LeaveType != "" && !LeaveType(r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type must be one of ANNUAL, SICK, PERSONAL, CASUAL, MATERNITY, PATERNITY, UNPAID")
	}
	r.Start, r.End = parseRange(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

// UpdateLeaveRequest edits a pending request. Omitted fields keep their value.
type UpdateLeaveRequest struct {
	LeaveType *string `json:"leave_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateLeaveRequest) Validate() error {
	errs := validator.Struct(r)

	if r.LeaveType != nil && !LeaveType(*r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type is invalid")
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if r.LeaveType == nil && r.StartDate == nil && r.EndDate == nil && r.Reason == nil {
		errs.Add("body", "at least one field must be provided")
	}

	return errs.Err()
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED CANCELLED"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r).Err()
}

type SetTotalRequest struct {
	Year        int    `json:"year" validate:"required,gte=2000,lte=2100"`
	LeaveType   string `json:"leave_type" validate:"required"`
	TotalLeaves int    `json:"total_leaves" validate:"gte=0,lte=366"`
}

func (r *SetTotalRequest) Validate() error {
	errs := validator.Struct(r)
	if r.LeaveType != "" && !LeaveType(r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type is invalid")
	}
	return errs.Err()
}

type ListFilter struct {
	EmployeeID string
	ManagerID  string
	Status     string
	LeaveType  string
	Month      int
	Year       int
	From       *time.Time // start_date >= From
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

type LeaveRequestResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	LeaveType    LeaveType `json:"leave_type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	LeaveDays    int       `json:"leave_days"`
	Reason       string    `json:"reason"`
	Status       Status    `json:"status"`
	ApprovedBy   *string   `json:"approved_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    r.LeaveType,
		StartDate:    r.StartDate.Format(validator.DateLayout),
		EndDate:      r.EndDate.Format(validator.DateLayout),
		LeaveDays:    r.LeaveDays,
		Reason:       r.Reason,
		Status:       r.Status,
		ApprovedBy:   r.ApprovedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ListResponse struct {
	Leaves     []LeaveRequestResponse `json:"leaves"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
}

type BalanceResponse struct {
	LeaveType   LeaveType `json:"leave_type"`
	Year        int       `json:"year"`
	TotalLeaves int       `json:"total_leaves"`
	UsedLeaves  int       `json:"used_leaves"`
	Remaining   int       `json:"remaining"`
}

func ToBalanceResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		LeaveType:   b.LeaveType,
		Year:        b.Year,
		TotalLeaves: b.TotalLeaves,
		UsedLeaves:  b.UsedLeaves,
		Remaining:   b.Remaining(),
	}
}

type SummaryResponse struct {
	EmployeeID      string            `json:"employee_id"`
	Year            int               `json:"year"`
	TotalLeaves     int               `json:"total_leaves"`
	UsedLeaves      int               `json:"used_leaves"`
	RemainingLeaves int               `json:"remaining_leaves"`
	Balances        []BalanceResponse `json:"balances"`
}

func parseRange(errs *validator.ValidationErrors, startStr, endStr string) (time.Time, time.Time) {
	var start, end time.Time
	var ok bool
	if startStr != "" {
		if start, ok = validator.IsValidDate(startStr); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if endStr != "" {
		if end, ok = validator.IsValidDate(endStr); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	return start, end
}
