package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	leaveservice "github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	tx              database.Transactor
	userRepo        user.UserRepository
	employeeRepo    employee.EmployeeRepository
	balanceRepo     leave.LeaveBalanceRepository
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
	now             func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:              tx,
		userRepo:        userRepo,
		employeeRepo:    employeeRepo,
		balanceRepo:     balanceRepo,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
		now:             time.Now,
	}
}

// Onboard implements employee.EmployeeService. The account, the employee
// record and the current year's leave balances are created together.
func (s *EmployeeServiceImpl) Onboard(ctx context.Context, req employee.OnboardRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.EmployeeCode = strings.TrimSpace(req.EmployeeCode)

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, user.ErrUserEmailExists
	}

	exists, err = s.employeeRepo.ExistsByCode(ctx, req.EmployeeCode)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get manager: %w", err)
		}
	}

	if err := s.checkPlacement(ctx, req.DepartmentID, req.DesignationID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	joining, _ := validator.IsValidDate(req.JoiningDate)
	status := employee.StatusActive
	if req.Status != "" {
		status = employee.Status(req.Status)
	}
	salary := req.Salary

	var created employee.Employee
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		newUser, err := s.userRepo.Create(ctx, user.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         user.Role(req.Role),
		})
		if err != nil {
			return err
		}

		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			UserID:        newUser.ID,
			EmployeeCode:  req.EmployeeCode,
			ManagerID:     req.ManagerID,
			DepartmentID:  req.DepartmentID,
			DesignationID: req.DesignationID,
			Salary:        &salary,
			Status:        status,
			JoiningDate:   joining,
		})
		if err != nil {
			return err
		}
		created.Name, created.Email, created.Role = newUser.Name, newUser.Email, string(newUser.Role)
		created.DepartmentName, created.DesignationName = s.placementNames(ctx, created)

		_, err = s.balanceRepo.CreateMissing(ctx, leaveservice.DefaultBalances(created.ID, s.now().Year()))
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee onboarded", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return employee.ToResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, session user.Session, id string) (employee.EmployeeResponse, error) {
	if !session.CanAccessEmployee(id) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if session.Role == user.RoleManager && emp.ID != session.EmployeeID &&
		(emp.ManagerID == nil || *emp.ManagerID != session.EmployeeID) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService. Managers only see their reports.
func (s *EmployeeServiceImpl) List(ctx context.Context, session user.Session, filter employee.ListFilter) (employee.ListResponse, error) {
	filter.Normalize()
	if !session.IsPrivileged() {
		if session.Role != user.RoleManager || session.EmployeeID == "" {
			return employee.ListResponse{}, employee.ErrUnauthorized
		}
		filter.ManagerID = session.EmployeeID
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListResponse{
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, employee.ToResponse(e))
	}
	return resp, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.EmployeeCode != nil {
		code := strings.TrimSpace(*req.EmployeeCode)
		if code != current.EmployeeCode {
			exists, err := s.employeeRepo.ExistsByCode(ctx, code)
			if err != nil {
				return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
			}
			if exists {
				return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
			}
		}
		current.EmployeeCode = code
	}

	if req.ManagerID != nil {
		current.ManagerID = nilIfBlank(*req.ManagerID)
		if current.ManagerID != nil {
			if err := s.checkManager(ctx, id, *current.ManagerID); err != nil {
				return employee.EmployeeResponse{}, err
			}
		}
	}
	if req.DepartmentID != nil {
		current.DepartmentID = nilIfBlank(*req.DepartmentID)
	}
	if req.DesignationID != nil {
		current.DesignationID = nilIfBlank(*req.DesignationID)
	}
	if err := s.checkPlacement(ctx, current.DepartmentID, current.DesignationID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Salary != nil {
		salary := *req.Salary
		current.Salary = &salary
	}
	if req.ParsedJoiningDate != nil {
		current.JoiningDate = *req.ParsedJoiningDate
	}
	if req.Status != nil {
		current.Status = employee.Status(*req.Status)
	}

	if err := s.employeeRepo.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	slog.Info("Employee updated", "employee_id", id)
	return employee.ToResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, session user.Session, id string) error {
	if session.EmployeeID == id {
		return employee.ErrSelfDeactivation
	}
	if err := s.employeeRepo.SetStatus(ctx, id, employee.StatusInactive); err != nil {
		return err
	}
	slog.Info("Employee deactivated", "employee_id", id)
	return nil
}

// checkManager rejects a manager that is the employee or reports to the
// employee somewhere up the chain.
func (s *EmployeeServiceImpl) checkManager(ctx context.Context, employeeID, managerID string) error {
	seen := map[string]bool{}
	for next := managerID; next != ""; {
		if next == employeeID {
			return employee.ErrInvalidManager
		}
		if seen[next] {
			return nil
		}
		seen[next] = true

		m, err := s.employeeRepo.GetByID(ctx, next)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.ErrManagerNotFound
			}
			return fmt.Errorf("failed to get manager: %w", err)
		}
		next = ""
		if m.ManagerID != nil {
			next = *m.ManagerID
		}
	}
	return nil
}

func (s *EmployeeServiceImpl) checkPlacement(ctx context.Context, departmentID, designationID *string) error {
	if departmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *departmentID); err != nil {
			if errors.Is(err, department.ErrDepartmentNotFound) {
				return employee.ErrDepartmentNotFound
			}
			return fmt.Errorf("failed to get department: %w", err)
		}
	}
	if designationID != nil {
		if _, err := s.designationRepo.GetByID(ctx, *designationID); err != nil {
			if errors.Is(err, designation.ErrDesignationNotFound) {
				return employee.ErrDesignationNotFound
			}
			return fmt.Errorf("failed to get designation: %w", err)
		}
	}
	return nil
}

// placementNames resolves names for a freshly created record. Lookups were
// already validated, so failures leave the names empty.
func (s *EmployeeServiceImpl) placementNames(ctx context.Context, e employee.Employee) (*string, *string) {
	var dept, desig *string
	if e.DepartmentID != nil {
		if d, err := s.departmentRepo.GetByID(ctx, *e.DepartmentID); err == nil {
			dept = &d.Name
		}
	}
	if e.DesignationID != nil {
		if d, err := s.designationRepo.GetByID(ctx, *e.DesignationID); err == nil {
			desig = &d.Name
		}
	}
	return dept, desig
}

func nilIfBlank(s string) *string {
	if validator.IsEmpty(s) {
		return nil
	}
	return &s
}
