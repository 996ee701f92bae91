package leave

import (
	"context"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
)

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequests struct {
	mu       sync.Mutex
	byID     map[string]leave.LeaveRequest
	managers map[string]string // employee id -> manager employee id
	nextID   int
}

func newFakeRequests(managers map[string]string) *fakeRequests {
	return &fakeRequests{byID: map[string]leave.LeaveRequest{}, managers: managers}
}

func (f *fakeRequests) Create(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = fmt.Sprintf("lr%d", f.nextID)
	if m, ok := f.managers[r.EmployeeID]; ok {
		r.ManagerID = &m
	}
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRequests) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeRequests) ListBlocking(ctx context.Context, employeeID, excludeID string) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for _, r := range f.byID {
		if r.EmployeeID == employeeID && r.ID != excludeID && r.Status.Blocking() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequests) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for _, r := range f.byID {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ManagerID != "" && (r.ManagerID == nil || *r.ManagerID != filter.ManagerID) {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequests) UpdateDetails(ctx context.Context, r leave.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[r.ID]
	if !ok || cur.Status != leave.StatusPending {
		return leave.ErrStatusChanged
	}
	cur.LeaveType, cur.StartDate, cur.EndDate, cur.Reason, cur.LeaveDays =
		r.LeaveType, r.StartDate, r.EndDate, r.Reason, r.LeaveDays
	f.byID[r.ID] = cur
	return nil
}

func (f *fakeRequests) CompareAndSetStatus(ctx context.Context, id string, prev, next leave.Status, approvedBy *string, deducted int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok || cur.Status != prev {
		return leave.ErrStatusChanged
	}
	cur.Status = next
	if approvedBy != nil {
		cur.ApprovedBy = approvedBy
	}
	cur.DeductedDays = deducted
	f.byID[id] = cur
	return nil
}

type balanceKey struct {
	employeeID string
	year       int
	leaveType  leave.LeaveType
}

type fakeBalances struct {
	mu   sync.Mutex
	rows map[balanceKey]leave.LeaveBalance
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{rows: map[balanceKey]leave.LeaveBalance{}}
}

func (f *fakeBalances) set(employeeID string, year int, t leave.LeaveType, total, used int) {
	f.rows[balanceKey{employeeID, year, t}] = leave.LeaveBalance{
		EmployeeID: employeeID, Year: year, LeaveType: t, TotalLeaves: total, UsedLeaves: used,
	}
}

func (f *fakeBalances) used(employeeID string, year int, t leave.LeaveType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[balanceKey{employeeID, year, t}].UsedLeaves
}

func (f *fakeBalances) Get(ctx context.Context, employeeID string, year int, t leave.LeaveType) (leave.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[balanceKey{employeeID, year, t}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalances) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveBalance
	for _, t := range leave.AllTypes {
		if b, ok := f.rows[balanceKey{employeeID, year, t}]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBalances) Upsert(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := balanceKey{b.EmployeeID, b.Year, b.LeaveType}
	cur := f.rows[k]
	if b.TotalLeaves < cur.UsedLeaves {
		return leave.LeaveBalance{}, leave.ErrTotalBelowUsed
	}
	b.UsedLeaves = cur.UsedLeaves
	f.rows[k] = b
	return b, nil
}

func (f *fakeBalances) CreateMissing(ctx context.Context, balances []leave.LeaveBalance) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range balances {
		k := balanceKey{b.EmployeeID, b.Year, b.LeaveType}
		if _, ok := f.rows[k]; ok {
			continue
		}
		f.rows[k] = b
		n++
	}
	return n, nil
}

func (f *fakeBalances) AdjustUsed(ctx context.Context, employeeID string, year int, t leave.LeaveType, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := balanceKey{employeeID, year, t}
	b, ok := f.rows[k]
	if !ok {
		return leave.ErrLeaveBalanceNotFound
	}
	next := b.UsedLeaves + delta
	if next < 0 || next > b.TotalLeaves {
		return leave.ErrInsufficientBalance
	}
	b.UsedLeaves = next
	f.rows[k] = b
	return nil
}

type fakeEmployees struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployees) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, e := range f.byID {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployees) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEmployees) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func (f *fakeEmployees) Update(ctx context.Context, e employee.Employee) error {
	return nil
}

func (f *fakeEmployees) SetStatus(ctx context.Context, id string, status employee.Status) error {
	return nil
}

func (f *fakeEmployees) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployees) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployees) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for id, e := range f.byID {
		if e.Status == employee.StatusActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeEmployees) CountExisting(ctx context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := f.byID[id]; ok {
			n++
		}
	}
	return n, nil
}

type recordingNotifier struct {
	notification.Service
	events []notification.FanOut
}

func (r *recordingNotifier) Notify(ctx context.Context, event notification.FanOut) (int, error) {
	r.events = append(r.events, event)
	return 1, nil
}
