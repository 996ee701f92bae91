package notification

import (
	"time"
)

// Type categorizes a notification.
type Type string

const (
	TypeLeave       Type = "LEAVE"
	TypeAttendance  Type = "ATTENDANCE"
	TypePayroll     Type = "PAYROLL"
	TypePerformance Type = "PERFORMANCE"
	TypeSystem      Type = "SYSTEM"
	TypeChat        Type = "CHAT"
)

// AllTypes returns all available notification types
func AllTypes() []Type {
	return []Type{TypeLeave, TypeAttendance, TypePayroll, TypePerformance, TypeSystem, TypeChat}
}

func (t Type) IsValid() bool {
	for _, v := range AllTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// Notification is persisted per recipient. Only IsRead ever changes.
type Notification struct {
	ID         string
	UserID     string
	EmployeeID string
	Type       Type
	Message    string
	IsRead     bool
	CreatedAt  time.Time
}

// Recipient is a resolved notification target.
type Recipient struct {
	UserID     string
	EmployeeID string
}

// FanOut describes one triggering business event.
type FanOut struct {
	EmployeeIDs []string
	ManagerID   *string // employee id of the manager
	Type        Type
	Message     string
}

// LiveEvent is the socket payload. It omits the notification id.
type LiveEvent struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
}

// EventName is the socket event carrying LiveEvent.
const EventName = "notification"
