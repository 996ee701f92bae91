package dashboard

import "time"

const RecentJoinerLimit = 5

type RecentJoiner struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Designation  *string   `json:"designation,omitempty"`
	JoiningDate  time.Time `json:"joining_date"`
}

type AdminStats struct {
	TotalEmployees   int64          `json:"total_employees"`
	TotalDepartments int64          `json:"total_departments"`
	RecentJoiners    []RecentJoiner `json:"recent_joiners"`
}

type HRStats struct {
	PendingLeaves   int64 `json:"pending_leaves"`
	TodayAttendance int64 `json:"today_attendance"`
}

// ManagerStats counts only the manager's direct reports.
type ManagerStats struct {
	TeamLeaves     int64 `json:"team_leaves"`
	TeamAttendance int64 `json:"team_attendance"`
}

type BalanceSummary struct {
	LeaveType string `json:"leave_type"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

type EmployeeStats struct {
	Year          int              `json:"year"`
	LeaveBalances []BalanceSummary `json:"leave_balances"`
}

// StatsResponse carries exactly one of the role sections.
type StatsResponse struct {
	Role     string         `json:"role"`
	Admin    *AdminStats    `json:"admin,omitempty"`
	HR       *HRStats       `json:"hr,omitempty"`
	Manager  *ManagerStats  `json:"manager,omitempty"`
	Employee *EmployeeStats `json:"employee,omitempty"`
}
