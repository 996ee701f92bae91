package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusLate    Status = "LATE"
	StatusLeave   Status = "LEAVE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLate, StatusLeave:
		return true
	}
	return false
}

type Attendance struct {
	ID             string
	EmployeeID     string
	AttendanceDate time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	TotalHours     *float64
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join
	EmployeeName *string
}

// IsOpen reports whether the employee is clocked in and not yet out.
func (a Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

// HoursBetween returns the elapsed hours between in and out.
func HoursBetween(in, out time.Time) float64 {
	return float64(out.Sub(in).Milliseconds()) / float64(time.Hour.Milliseconds())
}

// ClockAction names what a clock toggle did.
type ClockAction string

const (
	ActionClockIn  ClockAction = "CLOCK_IN"
	ActionClockOut ClockAction = "CLOCK_OUT"
)

// WorkingDays counts Monday to Friday dates in [start, end].
func WorkingDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// MonthRange returns the first and last calendar day of month/year.
func MonthRange(month, year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, -1)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
