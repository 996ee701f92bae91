package user

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	user.UserRepository
	byID map[string]user.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	out := []user.User{f.byID["u1"], f.byID["u2"]}
	return out, int64(len(out)), nil
}

func (f *fakeUsers) Update(ctx context.Context, u user.User) error {
	f.byID[u.ID] = u
	return nil
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

type fakeBalances struct {
	leave.LeaveBalanceRepository
	years []int
}

func (f *fakeBalances) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	f.years = append(f.years, year)
	return []leave.LeaveBalance{
		{EmployeeID: employeeID, Year: year, LeaveType: leave.TypeAnnual, TotalLeaves: 12, UsedLeaves: 5},
	}, nil
}

type fakeRoles struct {
	role.RoleRepository
}

func (fakeRoles) GetByID(ctx context.Context, id string) (role.Role, error) {
	if id != "r1" {
		return role.Role{}, role.ErrRoleNotFound
	}
	return role.Role{ID: "r1", Name: "Auditor"}, nil
}

func newTestService() (*UserServiceImpl, *fakeUsers, *fakeBalances) {
	e1, m1 := "e1", "m1"
	users := &fakeUsers{byID: map[string]user.User{
		"u1": {ID: "u1", Name: "Asha Rao", Email: "asha@example.com", Role: user.RoleEmployee, EmployeeID: &e1},
		"u2": {ID: "u2", Name: "Ravi Iyer", Email: "ravi@example.com", Role: user.RoleManager, EmployeeID: &m1},
		"u3": {ID: "u3", Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin},
	}}
	manager := "m1"
	employees := &fakeEmployees{byID: map[string]employee.Employee{
		"e1": {ID: "e1", EmployeeCode: "EMP-1", ManagerID: &manager},
		"m1": {ID: "m1", EmployeeCode: "MGR-1", Name: "Ravi Iyer", Email: "ravi@example.com"},
	}}
	balances := &fakeBalances{}
	svc := NewUserService(users, employees, balances, fakeRoles{}).(*UserServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc, users, balances
}

func sessionFor(userID string, r user.Role) user.Session {
	return user.Session{UserID: userID, Role: r, Capabilities: user.ResolveCapabilities(r, nil)}
}

func strPtr(s string) *string { return &s }

func TestList(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.List(context.Background(), user.ListFilter{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Equal(t, 20, resp.PageSize)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "Asha Rao", resp.Users[0].Name)
}

func TestGetByID(t *testing.T) {
	svc, _, balances := newTestService()
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, sessionFor("u1", user.RoleEmployee), "u1")
	require.NoError(t, err)
	assert.Equal(t, "EMP-1", *resp.EmployeeCode)
	require.NotNil(t, resp.Manager)
	assert.Equal(t, "Ravi Iyer", resp.Manager.Name)
	require.Len(t, resp.LeaveBalances, 1)
	assert.Equal(t, 7, resp.LeaveBalances[0].Remaining)
	assert.Equal(t, []int{2025}, balances.years)

	_, err = svc.GetByID(ctx, sessionFor("u1", user.RoleEmployee), "u2")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	admin, err := svc.GetByID(ctx, sessionFor("u3", user.RoleAdmin), "u3")
	require.NoError(t, err)
	assert.Nil(t, admin.EmployeeCode)
	assert.Empty(t, admin.LeaveBalances)

	_, err = svc.GetByID(ctx, sessionFor("u3", user.RoleAdmin), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUpdate_Self(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()
	self := sessionFor("u1", user.RoleEmployee)

	resp, err := svc.Update(ctx, self, "u1", user.UpdateUserRequest{
		Name:  strPtr(" Asha R. "),
		Email: strPtr("Asha.Rao@Example.com"),
		Phone: strPtr("+91 98450 00000"),
		City:  strPtr("Pune"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", resp.Name)
	assert.Equal(t, "asha.rao@example.com", resp.Email)
	assert.Equal(t, "Pune", *resp.Contact.City)

	_, err = svc.Update(ctx, self, "u1", user.UpdateUserRequest{City: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, users.byID["u1"].Contact.City)
	assert.NotNil(t, users.byID["u1"].Contact.Phone)

	_, err = svc.Update(ctx, self, "u1", user.UpdateUserRequest{Email: strPtr("ravi@example.com")})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUpdate_AccessRules(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()
	employeeSession := sessionFor("u1", user.RoleEmployee)
	admin := sessionFor("u3", user.RoleAdmin)

	_, err := svc.Update(ctx, employeeSession, "u2", user.UpdateUserRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.Update(ctx, employeeSession, "u1", user.UpdateUserRequest{Role: strPtr("ADMIN")})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.Update(ctx, sessionFor("u4", user.RoleHR), "u1", user.UpdateUserRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	resp, err := svc.Update(ctx, admin, "u1", user.UpdateUserRequest{Role: strPtr("MANAGER"), RoleID: strPtr("r1")})
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, resp.Role)
	assert.Equal(t, "r1", *users.byID["u1"].RoleID)

	_, err = svc.Update(ctx, admin, "u1", user.UpdateUserRequest{RoleID: strPtr("r9")})
	assert.ErrorIs(t, err, user.ErrCustomRoleNotFound)

	_, err = svc.Update(ctx, admin, "u1", user.UpdateUserRequest{RoleID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, users.byID["u1"].RoleID)

	_, err = svc.Update(ctx, admin, "u1", user.UpdateUserRequest{Role: strPtr("ROOT")})
	assert.Error(t, err)
}
