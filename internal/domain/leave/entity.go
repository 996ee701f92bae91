package leave

import "time"

type LeaveType string

const (
	TypeAnnual    LeaveType = "ANNUAL"
	TypeSick      LeaveType = "SICK"
	TypePersonal  LeaveType = "PERSONAL"
	TypeCasual    LeaveType = "CASUAL"
	TypeMaternity LeaveType = "MATERNITY"
	TypePaternity LeaveType = "PATERNITY"
	TypeUnpaid    LeaveType = "UNPAID"
)

// AllTypes lists leave types in seeding order.
var AllTypes = []LeaveType{
	TypeAnnual, TypeSick, TypePersonal, TypeCasual, TypeMaternity, TypePaternity, TypeUnpaid,
}

// DefaultAllowance is the yearly entitlement seeded for new balances.
var DefaultAllowance = map[LeaveType]int{
	TypeAnnual:    20,
	TypeSick:      10,
	TypePersonal:  5,
	TypeCasual:    7,
	TypeMaternity: 180,
	TypePaternity: 15,
	TypeUnpaid:    0,
}

func (t LeaveType) IsValid() bool {
	_, ok := DefaultAllowance[t]
	return ok
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Blocking reports whether a leave in this status occupies its dates.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusApproved
}

type LeaveRequest struct {
	ID           string
	EmployeeID   string
	LeaveType    LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	Status       Status
	ApprovedBy   *string
	LeaveDays    int
	DeductedDays int // days currently charged to the balance
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeName string
	ManagerID    *string
}

// Year is the balance year the leave is charged against.
func (r LeaveRequest) Year() int {
	return r.StartDate.Year()
}

type LeaveBalance struct {
	ID          string
	EmployeeID  string
	Year        int
	LeaveType   LeaveType
	TotalLeaves int
	UsedLeaves  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b LeaveBalance) Remaining() int {
	return b.TotalLeaves - b.UsedLeaves
}

// Covers reports whether days fit in the remaining balance.
func (b LeaveBalance) Covers(days int) bool {
	return b.Remaining() >= days
}
