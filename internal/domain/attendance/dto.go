package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ClockResponse struct {
	Action     ClockAction        `json:"action"`
	Attendance AttendanceResponse `json:"attendance"`
}

type UpdateAttendanceRequest struct {
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	Status         *string `json:"status,omitempty"`
	AttendanceDate *string `json:"attendance_date,omitempty"`

	// Parsed by Validate; a non-nil pointer to nil clears the stamp.
	ParsedCheckIn  **time.Time `json:"-"`
	ParsedCheckOut **time.Time `json:"-"`
	ParsedDate     *time.Time  `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.ParsedCheckIn = parseStamp(&errs, "check_in", r.CheckIn)
	r.ParsedCheckOut = parseStamp(&errs, "check_out", r.CheckOut)

	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", "status must be one of PRESENT, ABSENT, HALF_DAY, LATE, LEAVE")
	}
	if r.AttendanceDate != nil {
		d, ok := validator.IsValidDate(*r.AttendanceDate)
		if !ok {
			errs.Add("attendance_date", "attendance_date must be in YYYY-MM-DD format")
		} else {
			r.ParsedDate = &d
		}
	}

	return errs.Err()
}

func parseStamp(errs *validator.ValidationErrors, field string, raw *string) **time.Time {
	if raw == nil {
		return nil
	}
	var parsed *time.Time
	if *raw != "" {
		t, ok := validator.IsValidDateTime(*raw)
		if !ok {
			errs.Add(field, field+" must be an RFC3339 timestamp")
			return nil
		}
		parsed = &t
	}
	return &parsed
}

type BulkMarkRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,required"`
	Date        string   `json:"date" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=PRESENT ABSENT HALF_DAY LEAVE"`

	ParsedDate time.Time `json:"-"`
}

func (r *BulkMarkRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Date != "" {
		d, ok := validator.IsValidDate(r.Date)
		if !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
		r.ParsedDate = d
	}
	return errs.Err()
}

type ListFilter struct {
	EmployeeID string
	ManagerID  string
	Status     string
	Search     string
	From       time.Time
	To         time.Time
	Page       int
	PageSize   int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 10
	}
}

type AttendanceResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   *string    `json:"employee_name,omitempty"`
	AttendanceDate string     `json:"attendance_date"`
	CheckIn        *time.Time `json:"check_in"`
	CheckOut       *time.Time `json:"check_out"`
	TotalHours     *float64   `json:"total_hours"`
	Status         Status     `json:"status"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		AttendanceDate: a.AttendanceDate.Format(validator.DateLayout),
		CheckIn:        a.CheckIn,
		CheckOut:       a.CheckOut,
		TotalHours:     a.TotalHours,
		Status:         a.Status,
	}
}

type ListResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}
