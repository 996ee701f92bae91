package performance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type PerformanceServiceImpl struct {
	appraisals performance.AppraisalRepository
	employees  employee.EmployeeRepository
	notifier   notification.Service
}

func NewPerformanceService(
	appraisals performance.AppraisalRepository,
	employees employee.EmployeeRepository,
	notifier notification.Service,
) performance.PerformanceService {
	return &PerformanceServiceImpl{
		appraisals: appraisals,
		employees:  employees,
		notifier:   notifier,
	}
}

// Add implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Add(ctx context.Context, session user.Session, req performance.AddAppraisalRequest) (performance.AppraisalResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.AppraisalResponse{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return performance.AppraisalResponse{}, err
	}

	created, err := s.appraisals.Create(ctx, performance.Appraisal{
		EmployeeID: emp.ID,
		ReviewerID: session.UserID,
		Goals:      strings.TrimSpace(req.Goals),
		Rating:     req.Rating,
		Comments:   req.Comments,
	})
	if err != nil {
		return performance.AppraisalResponse{}, err
	}

	s.notify(ctx, emp, "New appraisal added for you. Rating: "+created.RatingLabel())
	return performance.ToResponse(created), nil
}

// Update implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Update(ctx context.Context, session user.Session, id string, req performance.UpdateAppraisalRequest) (performance.AppraisalResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.AppraisalResponse{}, err
	}

	a, err := s.appraisals.GetByID(ctx, id)
	if err != nil {
		return performance.AppraisalResponse{}, err
	}
	if req.Rating != nil {
		a.Rating = req.Rating
	}
	if req.Comments != nil {
		a.Comments = req.Comments
	}
	if err := s.appraisals.Update(ctx, a); err != nil {
		return performance.AppraisalResponse{}, err
	}

	emp, err := s.employees.GetByID(ctx, a.EmployeeID)
	if err != nil {
		slog.Warn("appraisal updated for missing employee", "appraisal_id", a.ID, "error", err)
	} else {
		s.notify(ctx, emp, "Your appraisal has been updated. Rating: "+a.RatingLabel())
	}
	return performance.ToResponse(a), nil
}

// ListByEmployee implements performance.PerformanceService. Employees may
// only read their own appraisals.
func (s *PerformanceServiceImpl) ListByEmployee(ctx context.Context, session user.Session, employeeID string) ([]performance.AppraisalResponse, error) {
	if session.Role == user.RoleEmployee && session.EmployeeID != employeeID {
		return nil, performance.ErrAccessDenied
	}

	appraisals, err := s.appraisals.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appraisals: %w", err)
	}
	out := make([]performance.AppraisalResponse, 0, len(appraisals))
	for _, a := range appraisals {
		out = append(out, performance.ToResponse(a))
	}
	return out, nil
}

func (s *PerformanceServiceImpl) notify(ctx context.Context, emp employee.Employee, message string) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Notify(ctx, notification.FanOut{
		EmployeeIDs: []string{emp.ID},
		ManagerID:   emp.ManagerID,
		Type:        notification.TypePerformance,
		Message:     message,
	})
	if err != nil {
		slog.Warn("appraisal notification failed", "employee_id", emp.ID, "error", err)
	}
}
