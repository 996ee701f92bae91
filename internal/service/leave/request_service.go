package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

const messageDateLayout = "02/01/2006"

type RequestService struct {
	tx        database.Transactor
	requests  leave.LeaveRequestRepository
	balances  leave.LeaveBalanceRepository
	employees employee.EmployeeRepository
	notifier  notification.Service
	logger    *slog.Logger
	now       func() time.Time
}

func NewRequestService(
	tx database.Transactor,
	requests leave.LeaveRequestRepository,
	balances leave.LeaveBalanceRepository,
	employees employee.EmployeeRepository,
	notifier notification.Service,
	logger *slog.Logger,
) *RequestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{
		tx:        tx,
		requests:  requests,
		balances:  balances,
		employees: employees,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// today is the current calendar date expressed in UTC, the zone request
// dates are parsed in.
func (s *RequestService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Apply implements leave.LeaveRequestService.
func (s *RequestService) Apply(ctx context.Context, session user.Session, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID := session.EmployeeID
	if req.EmployeeID != "" && session.IsPrivileged() {
		employeeID = req.EmployeeID
	}
	if employeeID == "" {
		return leave.LeaveRequestResponse{}, leave.ErrEmployeeRequired
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	draft := leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.LeaveType(req.LeaveType),
		StartDate:  req.Start,
		EndDate:    req.End,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     leave.StatusPending,
	}
	if draft.LeaveDays, err = s.check(ctx, draft); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.requests.Create(ctx, draft)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.EmployeeName = emp.Name

	s.notify(ctx, notification.FanOut{
		ManagerID: emp.ManagerID,
		Type:      notification.TypeLeave,
		Message: fmt.Sprintf("New %s leave request from %s (%s to %s) - %d day(s)",
			created.LeaveType, emp.Name,
			created.StartDate.Format(messageDateLayout), created.EndDate.Format(messageDateLayout),
			created.LeaveDays),
	})

	return leave.ToResponse(created), nil
}

// check runs the date, overlap and balance rules on r and returns the number
// of working days it covers.
func (s *RequestService) check(ctx context.Context, r leave.LeaveRequest) (int, error) {
	if r.StartDate.After(r.EndDate) {
		return 0, leave.ErrInvalidDateRange
	}
	if r.StartDate.Before(s.today()) {
		return 0, leave.ErrStartDateInPast
	}

	blocking, err := s.requests.ListBlocking(ctx, r.EmployeeID, r.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list existing leave: %w", err)
	}
	for _, b := range blocking {
		if leave.Overlaps(r.StartDate, r.EndDate, b.StartDate, b.EndDate) {
			return 0, leave.ErrOverlappingLeave
		}
	}

	days := leave.CountLeaveDays(r.StartDate, r.EndDate)
	if days <= 0 {
		return 0, leave.ErrNoWorkingDays
	}

	balance, err := s.balances.Get(ctx, r.EmployeeID, r.Year(), r.LeaveType)
	if err != nil {
		return 0, err
	}
	if !balance.Covers(days) {
		return 0, leave.ErrInsufficientBalance
	}
	return days, nil
}

// Update implements leave.LeaveRequestService.
func (s *RequestService) Update(ctx context.Context, session user.Session, id string, req leave.UpdateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if current.EmployeeID != session.EmployeeID && !session.IsPrivileged() {
		return leave.LeaveRequestResponse{}, leave.ErrForbidden
	}
	if current.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrNotEditable
	}

	if req.LeaveType != nil {
		current.LeaveType = leave.LeaveType(*req.LeaveType)
	}
	if req.StartDate != nil {
		current.StartDate, _ = validator.IsValidDate(*req.StartDate)
	}
	if req.EndDate != nil {
		current.EndDate, _ = validator.IsValidDate(*req.EndDate)
	}
	if req.Reason != nil {
		current.Reason = strings.TrimSpace(*req.Reason)
	}

	if current.LeaveDays, err = s.check(ctx, current); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := s.requests.UpdateDetails(ctx, current); err != nil {
		if errors.Is(err, leave.ErrStatusChanged) {
			return leave.LeaveRequestResponse{}, leave.ErrNotEditable
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return s.GetByID(ctx, session, id)
}

// UpdateStatus implements leave.LeaveRequestService.
func (s *RequestService) UpdateStatus(ctx context.Context, session user.Session, id string, req leave.UpdateStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !session.IsPrivileged() && !managedBy(current, session) {
		return leave.LeaveRequestResponse{}, leave.ErrForbidden
	}

	approver := session.UserID
	return s.move(ctx, session, current, leave.Status(req.Status), &approver)
}

// Cancel implements leave.LeaveRequestService.
func (s *RequestService) Cancel(ctx context.Context, session user.Session, id string) (leave.LeaveRequestResponse, error) {
	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if current.EmployeeID != session.EmployeeID && !session.IsPrivileged() {
		return leave.LeaveRequestResponse{}, leave.ErrForbidden
	}
	return s.move(ctx, session, current, leave.StatusCancelled, nil)
}

// move applies the status change and its balance effect in one transaction.
// The status write is conditional on the status read above, so a concurrent
// decision makes this one fail instead of charging twice.
func (s *RequestService) move(ctx context.Context, session user.Session, r leave.LeaveRequest, next leave.Status, approver *string) (leave.LeaveRequestResponse, error) {
	if !leave.CanTransition(r.Status, next) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidTransition
	}

	delta, deducted := leave.BalanceDelta(r, next)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requests.CompareAndSetStatus(ctx, r.ID, r.Status, next, approver, deducted); err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		return s.balances.AdjustUsed(ctx, r.EmployeeID, r.Year(), r.LeaveType, delta)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave status changed",
		slog.String("leave_id", r.ID),
		slog.String("from", string(r.Status)),
		slog.String("to", string(next)),
		slog.Int("balance_delta", delta),
	)

	s.notify(ctx, notification.FanOut{
		EmployeeIDs: []string{r.EmployeeID},
		ManagerID:   r.ManagerID,
		Type:        notification.TypeLeave,
		Message: fmt.Sprintf("Your %s leave (%s to %s) has been %s",
			r.LeaveType, r.StartDate.Format(messageDateLayout), r.EndDate.Format(messageDateLayout), next),
	})

	updated, err := s.requests.GetByID(ctx, r.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(updated), nil
}

func (s *RequestService) notify(ctx context.Context, event notification.FanOut) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("leave notification failed", slog.Any("error", err))
	}
}

func managedBy(r leave.LeaveRequest, session user.Session) bool {
	return r.ManagerID != nil && session.EmployeeID != "" && *r.ManagerID == session.EmployeeID
}

// GetByID implements leave.LeaveRequestService.
func (s *RequestService) GetByID(ctx context.Context, session user.Session, id string) (leave.LeaveRequestResponse, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if r.EmployeeID != session.EmployeeID && !session.IsPrivileged() && !managedBy(r, session) {
		return leave.LeaveRequestResponse{}, leave.ErrForbidden
	}
	return leave.ToResponse(r), nil
}

// ListMine implements leave.LeaveRequestService.
func (s *RequestService) ListMine(ctx context.Context, session user.Session, filter leave.ListFilter) (leave.ListResponse, error) {
	if session.EmployeeID == "" {
		return leave.ListResponse{}, leave.ErrEmployeeRequired
	}
	filter.EmployeeID = session.EmployeeID
	filter.ManagerID = ""
	return s.list(ctx, filter)
}

// ListTeam implements leave.LeaveRequestService.
func (s *RequestService) ListTeam(ctx context.Context, session user.Session, filter leave.ListFilter) (leave.ListResponse, error) {
	if session.EmployeeID == "" {
		return leave.ListResponse{}, leave.ErrEmployeeRequired
	}
	filter.ManagerID = session.EmployeeID
	return s.list(ctx, filter)
}

// ListAll implements leave.LeaveRequestService.
func (s *RequestService) ListAll(ctx context.Context, filter leave.ListFilter) (leave.ListResponse, error) {
	return s.list(ctx, filter)
}

func (s *RequestService) list(ctx context.Context, filter leave.ListFilter) (leave.ListResponse, error) {
	filter.Normalize()

	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := leave.ListResponse{
		Leaves:     make([]leave.LeaveRequestResponse, 0, len(requests)),
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	for _, r := range requests {
		resp.Leaves = append(resp.Leaves, leave.ToResponse(r))
	}
	return resp, nil
}
