package attendance

import "time"

type TodayState struct {
	IsCheckedIn bool       `json:"is_checked_in"`
	CheckInTime *time.Time `json:"check_in_time"`
	Status      *Status    `json:"status"`
	TotalHours  *float64   `json:"total_hours"`
}

type HistoryEntry struct {
	Date       string   `json:"date"`
	TotalHours *float64 `json:"total_hours"`
	Status     Status   `json:"status"`
}

type Summary struct {
	WorkingDays int            `json:"working_days"`
	PresentDays int            `json:"present_days"`
	AbsentDays  int            `json:"absent_days"`
	AvgHours    float64        `json:"avg_hours"`
	Today       TodayState     `json:"today"`
	History     []HistoryEntry `json:"history"`
}

// Summarize aggregates one month of records. records must belong to the
// [start, end] window; today is the caller's record for the current date.
func Summarize(records []Attendance, start, end time.Time, today *Attendance) Summary {
	s := Summary{WorkingDays: WorkingDays(start, end)}

	var totalHours float64
	for _, r := range records {
		if r.Status == StatusPresent && r.CheckIn != nil {
			s.PresentDays++
		}
		if r.TotalHours != nil {
			totalHours += *r.TotalHours
		}
	}

	s.AbsentDays = s.WorkingDays - s.PresentDays
	if s.AbsentDays < 0 {
		s.AbsentDays = 0
	}
	if s.PresentDays > 0 {
		s.AvgHours = round1(totalHours / float64(s.PresentDays))
	}

	if today != nil {
		status := today.Status
		s.Today = TodayState{
			IsCheckedIn: today.IsOpen(),
			CheckInTime: today.CheckIn,
			Status:      &status,
			TotalHours:  today.TotalHours,
		}
	}

	// newest first
	s.History = make([]HistoryEntry, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		s.History = append(s.History, HistoryEntry{
			Date:       r.AttendanceDate.Format("2006-01-02"),
			TotalHours: r.TotalHours,
			Status:     r.Status,
		})
	}

	return s
}
