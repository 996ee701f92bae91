package performance

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppraisals struct {
	byID map[string]performance.Appraisal
}

func (f *fakeAppraisals) Create(ctx context.Context, a performance.Appraisal) (performance.Appraisal, error) {
	a.ID = "ap1"
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeAppraisals) GetByID(ctx context.Context, id string) (performance.Appraisal, error) {
	a, ok := f.byID[id]
	if !ok {
		return performance.Appraisal{}, performance.ErrAppraisalNotFound
	}
	return a, nil
}

func (f *fakeAppraisals) Update(ctx context.Context, a performance.Appraisal) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAppraisals) ListByEmployee(ctx context.Context, employeeID string) ([]performance.Appraisal, error) {
	var out []performance.Appraisal
	for _, a := range f.byID {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
	byID map[string]employee.Employee
}

func (f *fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type recordingNotifier struct {
	notification.Service
	events []notification.FanOut
}

func (n *recordingNotifier) Notify(ctx context.Context, event notification.FanOut) (int, error) {
	n.events = append(n.events, event)
	return 1, nil
}

func newTestService() (performance.PerformanceService, *recordingNotifier) {
	manager := "m1"
	employees := &fakeEmployees{byID: map[string]employee.Employee{
		"e1": {ID: "e1", ManagerID: &manager},
	}}
	notifier := &recordingNotifier{}
	return NewPerformanceService(&fakeAppraisals{byID: map[string]performance.Appraisal{}}, employees, notifier), notifier
}

var hr = user.Session{UserID: "u-hr", EmployeeID: "h1", Role: user.RoleHR}

func TestAdd(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()

	resp, err := svc.Add(ctx, hr, performance.AddAppraisalRequest{EmployeeID: "e1", Goals: "Ship v2"})
	require.NoError(t, err)
	assert.Equal(t, "u-hr", resp.ReviewerID)
	assert.Nil(t, resp.Rating)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "New appraisal added for you. Rating: N/A", notifier.events[0].Message)
	assert.Equal(t, "m1", *notifier.events[0].ManagerID)
	assert.Equal(t, notification.TypePerformance, notifier.events[0].Type)

	_, err = svc.Add(ctx, hr, performance.AddAppraisalRequest{EmployeeID: "ghost", Goals: "x"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdate(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()
	_, err := svc.Add(ctx, hr, performance.AddAppraisalRequest{EmployeeID: "e1", Goals: "Ship v2"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, hr, "ap1", performance.UpdateAppraisalRequest{})
	assert.Error(t, err)

	rating := 4
	resp, err := svc.Update(ctx, hr, "ap1", performance.UpdateAppraisalRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, *resp.Rating)
	assert.Equal(t, "Your appraisal has been updated. Rating: 4", notifier.events[1].Message)

	_, err = svc.Update(ctx, hr, "missing", performance.UpdateAppraisalRequest{Rating: &rating})
	assert.ErrorIs(t, err, performance.ErrAppraisalNotFound)
}

func TestListByEmployee_EmployeeSeesOwnOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Add(ctx, hr, performance.AddAppraisalRequest{EmployeeID: "e1", Goals: "Ship v2"})
	require.NoError(t, err)

	own, err := svc.ListByEmployee(ctx, user.Session{EmployeeID: "e1", Role: user.RoleEmployee}, "e1")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = svc.ListByEmployee(ctx, user.Session{EmployeeID: "e2", Role: user.RoleEmployee}, "e1")
	assert.ErrorIs(t, err, performance.ErrAccessDenied)

	list, err := svc.ListByEmployee(ctx, user.Session{EmployeeID: "m1", Role: user.RoleManager}, "e1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
