package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	attendance.AttendanceRepository
	byID       map[string]attendance.Attendance
	nextID     int
	raceWinner *attendance.Attendance
	absentOn   time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]attendance.Attendance{}}
}

func (f *fakeRepo) find(employeeID string, date time.Time) (attendance.Attendance, bool) {
	for _, a := range f.byID {
		if a.EmployeeID == employeeID && a.AttendanceDate.Equal(date) {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	a, ok := f.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	a, ok := f.find(employeeID, date)
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeRepo) insert(a attendance.Attendance) attendance.Attendance {
	f.nextID++
	a.ID = fmt.Sprintf("a%d", f.nextID)
	f.byID[a.ID] = a
	return a
}

func (f *fakeRepo) CreateCheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	if f.raceWinner != nil {
		f.insert(*f.raceWinner)
		f.raceWinner = nil
		return attendance.Attendance{}, false, nil
	}
	if _, ok := f.find(a.EmployeeID, a.AttendanceDate); ok {
		return attendance.Attendance{}, false, nil
	}
	return f.insert(a), true, nil
}

func (f *fakeRepo) ClaimCheckIn(ctx context.Context, id string, checkIn time.Time) (bool, error) {
	a := f.byID[id]
	if a.CheckIn != nil {
		return false, nil
	}
	a.CheckIn, a.Status = &checkIn, attendance.StatusPresent
	f.byID[id] = a
	return true, nil
}

func (f *fakeRepo) CloseOut(ctx context.Context, id string, checkOut time.Time, hours float64) (bool, error) {
	a := f.byID[id]
	if a.CheckOut != nil {
		return false, nil
	}
	a.CheckOut, a.TotalHours = &checkOut, &hours
	f.byID[id] = a
	return true, nil
}

func (f *fakeRepo) Update(ctx context.Context, a attendance.Attendance) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepo) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (attendance.Attendance, error) {
	if a, ok := f.find(employeeID, date); ok {
		a.Status = status
		f.byID[a.ID] = a
		return a, nil
	}
	return f.insert(attendance.Attendance{EmployeeID: employeeID, AttendanceDate: date, Status: status}), nil
}

func (f *fakeRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for d := to; !d.Before(from); d = d.AddDate(0, 0, -1) {
		if a, ok := f.find(employeeID, d); ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	f.absentOn = date
	return 3, nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
	known map[string]bool
}

func (f *fakeEmployees) CountExisting(ctx context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if f.known[id] {
			n++
		}
	}
	return n, nil
}

var self = user.Session{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee}

func newTestService(repo *fakeRepo, clock *time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(inlineTx{}, repo, &fakeEmployees{known: map[string]bool{"e1": true, "e2": true}}, time.UTC).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return *clock }
	return svc
}

func TestClock_Toggle(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &now)
	ctx := context.Background()

	in, err := svc.Clock(ctx, self)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionClockIn, in.Action)
	assert.Equal(t, attendance.StatusPresent, in.Attendance.Status)
	assert.Nil(t, in.Attendance.CheckOut)

	now = now.Add(8*time.Hour + 30*time.Minute)
	out, err := svc.Clock(ctx, self)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionClockOut, out.Action)
	require.NotNil(t, out.Attendance.TotalHours)
	assert.InDelta(t, 8.5, *out.Attendance.TotalHours, 1e-9)

	_, err = svc.Clock(ctx, self)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClock_LostCreateRaceClosesOut(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	repo.raceWinner = &attendance.Attendance{
		EmployeeID:     "e1",
		AttendanceDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		CheckIn:        &earlier,
		Status:         attendance.StatusPresent,
	}
	svc := newTestService(repo, &now)

	resp, err := svc.Clock(context.Background(), self)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionClockOut, resp.Action)
	assert.InDelta(t, 1.0, *resp.Attendance.TotalHours, 1e-9)
}

func TestClock_OverMarkedRow(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &now)
	ctx := context.Background()

	_, err := svc.BulkMark(ctx, attendance.BulkMarkRequest{EmployeeIDs: []string{"e1"}, Date: "2025-03-05", Status: "ABSENT"})
	require.NoError(t, err)

	in, err := svc.Clock(ctx, self)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionClockIn, in.Action)
	assert.Equal(t, attendance.StatusPresent, in.Attendance.Status)
	require.NotNil(t, in.Attendance.CheckIn)

	now = now.Add(4 * time.Hour)
	out, err := svc.Clock(ctx, self)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionClockOut, out.Action)
	assert.InDelta(t, 4.0, *out.Attendance.TotalHours, 1e-9)
}

func TestClock_OnLeaveDay(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &now)
	repo.insert(attendance.Attendance{EmployeeID: "e1", AttendanceDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Status: attendance.StatusLeave})

	_, err := svc.Clock(context.Background(), self)
	assert.ErrorIs(t, err, attendance.ErrOnLeave)
}

func TestClock_RequiresEmployee(t *testing.T) {
	now := time.Now()
	svc := newTestService(newFakeRepo(), &now)

	_, err := svc.Clock(context.Background(), user.Session{UserID: "admin", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, attendance.ErrEmployeeRequired)
}

func TestSummary(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &now)

	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	stamp := func(d, h int) *time.Time { t := time.Date(2025, 3, d, h, 0, 0, 0, time.UTC); return &t }
	hours := func(h float64) *float64 { return &h }

	repo.insert(attendance.Attendance{EmployeeID: "e1", AttendanceDate: day(3), CheckIn: stamp(3, 9), CheckOut: stamp(3, 17), TotalHours: hours(8), Status: attendance.StatusPresent})
	repo.insert(attendance.Attendance{EmployeeID: "e1", AttendanceDate: day(4), CheckIn: stamp(4, 9), CheckOut: stamp(4, 16), TotalHours: hours(7), Status: attendance.StatusPresent})
	repo.insert(attendance.Attendance{EmployeeID: "e1", AttendanceDate: day(5), CheckIn: stamp(5, 9), Status: attendance.StatusPresent})

	s, err := svc.Summary(context.Background(), self, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 21, s.WorkingDays)
	assert.Equal(t, 3, s.PresentDays)
	assert.Equal(t, 18, s.AbsentDays)
	assert.Equal(t, 5.0, s.AvgHours)
	assert.True(t, s.Today.IsCheckedIn)
	require.Len(t, s.History, 3)
	assert.Equal(t, "2025-03-05", s.History[0].Date)

	_, err = svc.Summary(context.Background(), self, "e2", 3, 2025)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestUpdate_RecomputesHours(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now()
	svc := newTestService(repo, &now)
	in := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	rec := repo.insert(attendance.Attendance{EmployeeID: "e1", AttendanceDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), CheckIn: &in, Status: attendance.StatusPresent})

	out := "2025-03-03T13:30:00Z"
	resp, err := svc.Update(context.Background(), rec.ID, attendance.UpdateAttendanceRequest{CheckOut: &out})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, *resp.TotalHours, 1e-9)

	early := "2025-03-03T08:00:00Z"
	_, err = svc.Update(context.Background(), rec.ID, attendance.UpdateAttendanceRequest{CheckOut: &early})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeIn)
}

func TestBulkMark(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now()
	svc := newTestService(repo, &now)

	_, err := svc.BulkMark(context.Background(), attendance.BulkMarkRequest{
		EmployeeIDs: []string{"e1", "ghost"}, Date: "2025-03-03", Status: "ABSENT",
	})
	assert.ErrorIs(t, err, attendance.ErrUnknownEmployees)

	resp, err := svc.BulkMark(context.Background(), attendance.BulkMarkRequest{
		EmployeeIDs: []string{"e1", "e2", "e1"}, Date: "2025-03-03", Status: "LEAVE",
	})
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, attendance.StatusLeave, resp[0].Status)
}

func TestMarkAbsent_PreviousWorkingDay(t *testing.T) {
	repo := newFakeRepo()
	monday := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &monday)

	n, err := svc.MarkAbsent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), repo.absentOn)
}
