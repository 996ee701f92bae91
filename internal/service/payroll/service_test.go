package payroll

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fakeComponents struct {
	byID       map[string]payroll.ComponentType
	referenced map[string]bool
	deleted    []string
}

func (f *fakeComponents) Create(ctx context.Context, c payroll.ComponentType) (payroll.ComponentType, error) {
	c.ID = c.Name
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeComponents) GetByID(ctx context.Context, id string) (payroll.ComponentType, error) {
	c, ok := f.byID[id]
	if !ok {
		return payroll.ComponentType{}, payroll.ErrComponentTypeNotFound
	}
	return c, nil
}

func (f *fakeComponents) GetByIDs(ctx context.Context, ids []string) ([]payroll.ComponentType, error) {
	var out []payroll.ComponentType
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComponents) List(ctx context.Context, activeOnly bool) ([]payroll.ComponentType, error) {
	var out []payroll.ComponentType
	for _, id := range []string{"hra", "pf", "old"} {
		c, ok := f.byID[id]
		if ok && (c.IsActive || !activeOnly) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComponents) Update(ctx context.Context, c payroll.ComponentType) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeComponents) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeComponents) IsReferenced(ctx context.Context, id string) (bool, error) {
	return f.referenced[id], nil
}

// fakeRecords joins the employee name and code on read, as recordSelect does.
type fakeRecords struct {
	byID      map[string]payroll.Record
	employees *fakeEmployees
}

func (f *fakeRecords) withEmployee(r payroll.Record) payroll.Record {
	if e, ok := f.employees.byID[r.EmployeeID]; ok {
		r.EmployeeName, r.EmployeeCode = e.Name, e.EmployeeCode
	}
	return r
}

func (f *fakeRecords) Create(ctx context.Context, r payroll.Record) (payroll.Record, error) {
	for _, existing := range f.byID {
		if existing.EmployeeID == r.EmployeeID && existing.Month == r.Month && existing.Year == r.Year {
			return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	r.ID = "rec-" + r.EmployeeID
	r.EmployeeName, r.EmployeeCode = "", ""
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRecords) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	r, ok := f.byID[id]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return f.withEmployee(r), nil
}

func (f *fakeRecords) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.Record, int64, error) {
	var out []payroll.Record
	for _, r := range f.byID {
		if filter.EmployeeID == "" || r.EmployeeID == filter.EmployeeID {
			out = append(out, f.withEmployee(r))
		}
	}
	return out, int64(len(out)), nil
}

type recordingNotifier struct {
	notification.Service
	events []notification.FanOut
}

func (n *recordingNotifier) Notify(ctx context.Context, event notification.FanOut) (int, error) {
	n.events = append(n.events, event)
	return 1, nil
}

type fixture struct {
	svc        payroll.PayrollService
	components *fakeComponents
	records    *fakeRecords
	notifier   *recordingNotifier
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() fixture {
	salary := dec("120000")
	employees := &fakeEmployees{byID: map[string]employee.Employee{
		"e1": {ID: "e1", Name: "Asha", EmployeeCode: "EMP001", Salary: &salary},
		"e2": {ID: "e2", Name: "Ravi", EmployeeCode: "EMP002"},
	}}
	components := &fakeComponents{
		byID: map[string]payroll.ComponentType{
			"hra": {ID: "hra", Name: "HRA", Kind: payroll.KindAllowance, Percent: dec("50"), IsActive: true},
			"pf":  {ID: "pf", Name: "PF", Kind: payroll.KindDeduction, Percent: dec("10"), IsActive: true},
			"old": {ID: "old", Name: "Old", Kind: payroll.KindAllowance, Percent: dec("5"), IsActive: false},
		},
		referenced: map[string]bool{},
	}
	records := &fakeRecords{byID: map[string]payroll.Record{}, employees: employees}
	notifier := &recordingNotifier{}
	return fixture{
		svc:        NewPayrollService(inlineTx{}, records, components, employees, notifier, nil),
		components: components,
		records:    records,
		notifier:   notifier,
	}
}

func TestGenerate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeID: "e1", Month: 3, Year: 2025,
		Components: []payroll.ComponentInput{{ComponentTypeID: "hra"}, {ComponentTypeID: "pf"}},
	})
	require.NoError(t, err)
	assert.True(t, dec("10000").Equal(resp.MonthlySalary))
	assert.True(t, dec("5000").Equal(resp.TotalAllowance))
	assert.True(t, dec("1000").Equal(resp.TotalDeduction))
	assert.True(t, dec("4000").Equal(resp.NetSalary))
	assert.Len(t, resp.Components, 2)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, []string{"e1"}, f.notifier.events[0].EmployeeIDs)
	assert.Equal(t, notification.TypePayroll, f.notifier.events[0].Type)
	assert.Equal(t, "Payroll for 3/2025 generated. Net Salary: ₹4000.00", f.notifier.events[0].Message)

	_, err = f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "e1", Month: 3, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestGenerate_PercentOverride(t *testing.T) {
	f := newFixture()
	twenty := dec("20")

	resp, err := f.svc.Generate(context.Background(), payroll.GenerateRequest{
		EmployeeID: "e1", Month: 4, Year: 2025,
		Components: []payroll.ComponentInput{{ComponentTypeID: "hra", Percent: &twenty}},
	})
	require.NoError(t, err)
	assert.True(t, dec("2000").Equal(resp.NetSalary))
}

func TestGenerate_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "e2", Month: 3, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrEmployeeHasNoSalary)

	_, err = f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "ghost", Month: 3, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrEmployeeHasNoSalary)

	_, err = f.svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeID: "e1", Month: 3, Year: 2025,
		Components: []payroll.ComponentInput{{ComponentTypeID: "bonus"}},
	})
	assert.ErrorIs(t, err, payroll.ErrComponentTypeNotFound)
	assert.Empty(t, f.records.byID)
}

func TestPreview_AppliesActiveComponents(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Preview(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, resp.Components, 2)
	assert.True(t, dec("4000").Equal(resp.NetSalary))
	assert.Empty(t, f.records.byID)
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "e1", Month: 3, Year: 2025})
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, user.Session{EmployeeID: "e1", Role: user.RoleEmployee}, created.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, user.Session{EmployeeID: "e2", Role: user.RoleEmployee}, created.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	slip, err := f.svc.Payslip(ctx, user.Session{Role: user.RoleHR}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "payslip-Asha-3-2025.pdf", slip.Filename)
	assert.Equal(t, "%PDF", string(slip.Content[:4]))

	mine, err := f.svc.ListMine(ctx, user.Session{EmployeeID: "e2", Role: user.RoleEmployee}, payroll.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine.Records)
	assert.Equal(t, 20, mine.PageSize)
}

func TestComponentTypeService_Delete(t *testing.T) {
	f := newFixture()
	svc := NewComponentTypeService(f.components)
	ctx := context.Background()

	f.components.referenced["hra"] = true
	require.NoError(t, svc.Delete(ctx, "hra"))
	assert.False(t, f.components.byID["hra"].IsActive)
	assert.Empty(t, f.components.deleted)

	require.NoError(t, svc.Delete(ctx, "pf"))
	assert.Equal(t, []string{"pf"}, f.components.deleted)

	assert.ErrorIs(t, svc.Delete(ctx, "ghost"), payroll.ErrComponentTypeNotFound)
}

func TestComponentTypeService_CreateUpdate(t *testing.T) {
	f := newFixture()
	svc := NewComponentTypeService(f.components)
	ctx := context.Background()

	_, err := svc.Create(ctx, payroll.CreateComponentTypeRequest{Name: "Bonus", Type: "BONUS", Percent: dec("5")})
	assert.Error(t, err)

	created, err := svc.Create(ctx, payroll.CreateComponentTypeRequest{Name: " Bonus ", Type: "ALLOWANCE", Percent: dec("5")})
	require.NoError(t, err)
	assert.Equal(t, "Bonus", created.Name)
	assert.True(t, created.IsActive)

	pct := dec("7.5")
	updated, err := svc.Update(ctx, created.ID, payroll.UpdateComponentTypeRequest{Percent: &pct})
	require.NoError(t, err)
	assert.True(t, pct.Equal(updated.Percent))

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
