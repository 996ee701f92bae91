package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		loc:                  loc,
		now:                  time.Now,
	}
}

// today returns the local calendar date as a UTC midnight, the form DATE
// columns are compared in.
func (a *AttendanceServiceImpl) today() time.Time {
	return calendarDate(a.now().In(a.loc))
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock implements attendance.AttendanceService. It clocks in when the day
// has no record or only a marked status, clocks out when the record is still
// open, and refuses a third punch.
func (a *AttendanceServiceImpl) Clock(ctx context.Context, session user.Session) (attendance.ClockResponse, error) {
	if session.EmployeeID == "" {
		return attendance.ClockResponse{}, attendance.ErrEmployeeRequired
	}
	now := a.now()
	today := a.today()

	record, err := a.AttendanceRepository.GetByEmployeeDate(ctx, session.EmployeeID, today)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.ClockResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		created, ok, err := a.AttendanceRepository.CreateCheckIn(ctx, attendance.Attendance{
			EmployeeID:     session.EmployeeID,
			AttendanceDate: today,
			CheckIn:        &now,
			Status:         attendance.StatusPresent,
		})
		if err != nil {
			return attendance.ClockResponse{}, fmt.Errorf("failed to clock in: %w", err)
		}
		if ok {
			return attendance.ClockResponse{Action: attendance.ActionClockIn, Attendance: attendance.ToResponse(created)}, nil
		}

		// Another request created the row first.
		record, err = a.AttendanceRepository.GetByEmployeeDate(ctx, session.EmployeeID, today)
		if err != nil {
			return attendance.ClockResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
		}
	}

	// Rows written by bulk marking or the absence job carry no check_in.
	if record.CheckIn == nil {
		if record.Status == attendance.StatusLeave {
			return attendance.ClockResponse{}, attendance.ErrOnLeave
		}
		claimed, err := a.AttendanceRepository.ClaimCheckIn(ctx, record.ID, now)
		if err != nil {
			return attendance.ClockResponse{}, fmt.Errorf("failed to clock in: %w", err)
		}
		if claimed {
			record.CheckIn = &now
			record.Status = attendance.StatusPresent
			return attendance.ClockResponse{Action: attendance.ActionClockIn, Attendance: attendance.ToResponse(record)}, nil
		}
		record, err = a.AttendanceRepository.GetByID(ctx, record.ID)
		if err != nil {
			return attendance.ClockResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
		}
	}

	if !record.IsOpen() {
		return attendance.ClockResponse{}, attendance.ErrAlreadyClockedOut
	}

	hours := attendance.HoursBetween(*record.CheckIn, now)
	closed, err := a.AttendanceRepository.CloseOut(ctx, record.ID, now, hours)
	if err != nil {
		return attendance.ClockResponse{}, fmt.Errorf("failed to clock out: %w", err)
	}
	if !closed {
		return attendance.ClockResponse{}, attendance.ErrAlreadyClockedOut
	}

	record.CheckOut = &now
	record.TotalHours = &hours
	return attendance.ClockResponse{Action: attendance.ActionClockOut, Attendance: attendance.ToResponse(record)}, nil
}

// Summary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summary(ctx context.Context, session user.Session, employeeID string, month, year int) (attendance.Summary, error) {
	if employeeID == "" {
		employeeID = session.EmployeeID
	}
	if employeeID == "" {
		return attendance.Summary{}, attendance.ErrEmployeeRequired
	}
	if !session.CanAccessEmployee(employeeID) {
		return attendance.Summary{}, user.ErrInsufficientPermissions
	}

	month, year = a.period(month, year)
	start, end := attendance.MonthRange(month, year, time.UTC)

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	// Summarize takes records oldest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	var today *attendance.Attendance
	record, err := a.AttendanceRepository.GetByEmployeeDate(ctx, employeeID, a.today())
	switch {
	case err == nil:
		today = &record
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.Summary{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return attendance.Summarize(records, start, end, today), nil
}

func (a *AttendanceServiceImpl) period(month, year int) (int, int) {
	now := a.now().In(a.loc)
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}
	return month, year
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, session user.Session, month, year int) ([]attendance.AttendanceResponse, error) {
	if session.EmployeeID == "" {
		return nil, attendance.ErrEmployeeRequired
	}
	month, year = a.period(month, year)
	start, end := attendance.MonthRange(month, year, time.UTC)

	records, err := a.AttendanceRepository.ListByEmployee(ctx, session.EmployeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.ToResponse(r))
	}
	return out, nil
}

// ListTeam implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListTeam(ctx context.Context, session user.Session, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if session.EmployeeID == "" {
		return attendance.ListResponse{}, attendance.ErrEmployeeRequired
	}
	filter.ManagerID = session.EmployeeID
	return a.ListAll(ctx, filter)
}

// ListAll implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	filter.Normalize()

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.ListResponse{
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
		TotalCount:  total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}
	for _, r := range records {
		resp.Attendances = append(resp.Attendances, attendance.ToResponse(r))
	}
	return resp, nil
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ParsedCheckIn != nil {
		record.CheckIn = *req.ParsedCheckIn
	}
	if req.ParsedCheckOut != nil {
		record.CheckOut = *req.ParsedCheckOut
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.ParsedDate != nil {
		record.AttendanceDate = *req.ParsedDate
	}

	record.TotalHours = nil
	if record.CheckIn != nil && record.CheckOut != nil {
		if !record.CheckOut.After(*record.CheckIn) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
		}
		hours := attendance.HoursBetween(*record.CheckIn, *record.CheckOut)
		record.TotalHours = &hours
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// BulkMark implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BulkMark(ctx context.Context, req attendance.BulkMarkRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids := uniqueIDs(req.EmployeeIDs)
	n, err := a.EmployeeRepository.CountExisting(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check employees: %w", err)
	}
	if n != len(ids) {
		return nil, attendance.ErrUnknownEmployees
	}

	out := make([]attendance.AttendanceResponse, 0, len(ids))
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			record, err := a.AttendanceRepository.UpsertStatus(ctx, id, req.ParsedDate, attendance.Status(req.Status))
			if err != nil {
				return err
			}
			out = append(out, attendance.ToResponse(record))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAbsent implements attendance.AttendanceService. It closes the previous
// working day for active employees with no record, as LEAVE when an approved
// leave covers it and ABSENT otherwise.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context) (int64, error) {
	day := PreviousWorkingDay(a.today())

	n, err := a.AttendanceRepository.MarkAbsent(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absent: %w", err)
	}
	slog.Info("Marked absent employees", "date", day.Format("2006-01-02"), "count", n)
	return n, nil
}

// PreviousWorkingDay returns the latest Monday to Friday date before day.
func PreviousWorkingDay(day time.Time) time.Time {
	d := day.AddDate(0, 0, -1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
