package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type UserServiceImpl struct {
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
	balanceRepo  leave.LeaveBalanceRepository
	roleRepo     role.RoleRepository
	now          func() time.Time
}

func NewUserService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	roleRepo role.RoleRepository,
) user.UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		balanceRepo:  balanceRepo,
		roleRepo:     roleRepo,
		now:          time.Now,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListFilter) (user.ListResponse, error) {
	filter.Normalize()

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return user.ListResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	resp := user.ListResponse{
		Users:      make([]user.UserResponse, 0, len(users)),
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, user.ToResponse(u))
	}
	return resp, nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, session user.Session, id string) (user.UserDetailResponse, error) {
	if session.UserID != id && !session.Can(user.CapUsersView) {
		return user.UserDetailResponse{}, user.ErrInsufficientPermissions
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserDetailResponse{}, err
	}

	resp := user.UserDetailResponse{
		UserResponse:  user.ToResponse(u),
		LeaveBalances: []user.LeaveBalanceSummary{},
	}
	if u.EmployeeID == nil {
		return resp, nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, *u.EmployeeID)
	if err != nil {
		return user.UserDetailResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	resp.EmployeeCode = &emp.EmployeeCode

	if emp.ManagerID != nil {
		m, err := s.employeeRepo.GetByID(ctx, *emp.ManagerID)
		switch {
		case err == nil:
			resp.Manager = &user.ManagerSummary{ID: m.ID, Name: m.Name, Email: m.Email}
		case !errors.Is(err, employee.ErrEmployeeNotFound):
			return user.UserDetailResponse{}, fmt.Errorf("failed to get manager: %w", err)
		}
	}

	balances, err := s.balanceRepo.ListByEmployeeYear(ctx, emp.ID, s.now().Year())
	if err != nil {
		return user.UserDetailResponse{}, fmt.Errorf("failed to list leave balances: %w", err)
	}
	for _, b := range balances {
		resp.LeaveBalances = append(resp.LeaveBalances, user.LeaveBalanceSummary{
			LeaveType: string(b.LeaveType),
			Total:     b.TotalLeaves,
			Used:      b.UsedLeaves,
			Remaining: b.Remaining(),
		})
	}
	return resp, nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, session user.Session, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if session.UserID != id && !session.Can(user.CapUsersEdit) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if req.ChangesAccess() && !session.Can(user.CapUsersEdit) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		current.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !strings.EqualFold(email, current.Email) {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return user.UserResponse{}, user.ErrUserEmailExists
			}
		}
		current.Email = email
	}
	if req.Role != nil {
		current.Role = user.Role(*req.Role)
	}
	if req.RoleID != nil {
		current.RoleID = nilIfBlank(*req.RoleID)
		if current.RoleID != nil {
			if _, err := s.roleRepo.GetByID(ctx, *current.RoleID); err != nil {
				if errors.Is(err, role.ErrRoleNotFound) {
					return user.UserResponse{}, user.ErrCustomRoleNotFound
				}
				return user.UserResponse{}, fmt.Errorf("failed to get role: %w", err)
			}
		}
	}
	applyContact(&current.Contact, req)

	if err := s.userRepo.Update(ctx, current); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	slog.Info("User updated", "user_id", id, "by", session.UserID)
	return user.ToResponse(updated), nil
}

// applyContact copies the contact fields present in req. Blank values clear
// the stored field.
func applyContact(c *user.Contact, req user.UpdateUserRequest) {
	set := func(dst **string, src *string) {
		if src != nil {
			*dst = nilIfBlank(*src)
		}
	}
	set(&c.Phone, req.Phone)
	set(&c.Address, req.Address)
	set(&c.City, req.City)
	set(&c.State, req.State)
	set(&c.Country, req.Country)
	set(&c.ZipCode, req.ZipCode)
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if validator.IsEmpty(s) {
		return nil
	}
	return &s
}
