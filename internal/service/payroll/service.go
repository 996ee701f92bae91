package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/payslip"
)

type PayrollServiceImpl struct {
	tx            database.Transactor
	recordRepo    payroll.RecordRepository
	componentRepo payroll.ComponentTypeRepository
	employeeRepo  employee.EmployeeRepository
	notifier      notification.Service
	logger        *slog.Logger
}

func NewPayrollService(
	tx database.Transactor,
	recordRepo payroll.RecordRepository,
	componentRepo payroll.ComponentTypeRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
	logger *slog.Logger,
) payroll.PayrollService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		tx:            tx,
		recordRepo:    recordRepo,
		componentRepo: componentRepo,
		employeeRepo:  employeeRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// salaried loads an employee that payroll can be generated for.
func (s *PayrollServiceImpl) salaried(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, payroll.ErrEmployeeHasNoSalary
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.HasSalary() {
		return employee.Employee{}, payroll.ErrEmployeeHasNoSalary
	}
	return emp, nil
}

// lines resolves the requested components. An empty request applies every
// active component type at its configured percent.
func (s *PayrollServiceImpl) lines(ctx context.Context, inputs []payroll.ComponentInput) ([]payroll.Line, error) {
	if len(inputs) == 0 {
		active, err := s.componentRepo.List(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list payroll components: %w", err)
		}
		if len(active) == 0 {
			return nil, payroll.ErrNoComponents
		}
		lines := make([]payroll.Line, 0, len(active))
		for _, c := range active {
			lines = append(lines, payroll.Line{ComponentTypeID: c.ID, Name: c.Name, Kind: c.Kind, Percent: c.Percent})
		}
		return lines, nil
	}

	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ComponentTypeID)
	}
	types, err := s.componentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll components: %w", err)
	}
	byID := make(map[string]payroll.ComponentType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}

	lines := make([]payroll.Line, 0, len(inputs))
	for _, in := range inputs {
		t, ok := byID[in.ComponentTypeID]
		if !ok {
			return nil, payroll.ErrComponentTypeNotFound
		}
		percent := t.Percent
		if in.Percent != nil {
			percent = *in.Percent
		}
		lines = append(lines, payroll.Line{ComponentTypeID: t.ID, Name: t.Name, Kind: t.Kind, Percent: percent})
	}
	return lines, nil
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	emp, err := s.salaried(ctx, req.EmployeeID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	lines, err := s.lines(ctx, req.Components)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	calc := payroll.Compute(*emp.Salary, lines)
	record := payroll.Record{
		EmployeeID:     emp.ID,
		Month:          req.Month,
		Year:           req.Year,
		AnnualSalary:   *emp.Salary,
		MonthlySalary:  calc.MonthlySalary,
		TotalAllowance: calc.TotalAllowance,
		TotalDeduction: calc.TotalDeduction,
		NetSalary:      calc.NetSalary,
		Components:     calc.Components,
	}

	var created payroll.Record
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err = s.recordRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	created.EmployeeName = emp.Name
	created.EmployeeCode = emp.EmployeeCode

	s.logger.Info("payroll generated",
		slog.String("employee_id", emp.ID),
		slog.Int("month", req.Month),
		slog.Int("year", req.Year),
		slog.String("net_salary", created.NetSalary.StringFixed(2)),
	)

	if s.notifier != nil {
		_, err := s.notifier.Notify(ctx, notification.FanOut{
			EmployeeIDs: []string{emp.ID},
			Type:        notification.TypePayroll,
			Message: fmt.Sprintf("Payroll for %d/%d generated. Net Salary: ₹%s",
				req.Month, req.Year, created.NetSalary.StringFixed(2)),
		})
		if err != nil {
			s.logger.Warn("payroll notification failed", slog.Any("error", err))
		}
	}

	return payroll.ToRecordResponse(created), nil
}

// Preview implements payroll.PayrollService. Nothing is stored.
func (s *PayrollServiceImpl) Preview(ctx context.Context, employeeID string) (payroll.PreviewResponse, error) {
	emp, err := s.salaried(ctx, employeeID)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}
	lines, err := s.lines(ctx, nil)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}
	return payroll.ToPreviewResponse(emp.ID, payroll.Compute(*emp.Salary, lines)), nil
}

func (s *PayrollServiceImpl) visible(ctx context.Context, session user.Session, id string) (payroll.Record, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Record{}, err
	}
	if !session.IsPrivileged() && record.EmployeeID != session.EmployeeID {
		return payroll.Record{}, user.ErrInsufficientPermissions
	}
	return record, nil
}

// GetByID implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetByID(ctx context.Context, session user.Session, id string) (payroll.RecordResponse, error) {
	record, err := s.visible(ctx, session, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.ToRecordResponse(record), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.ListFilter) (payroll.ListResponse, error) {
	filter.Normalize()

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}
	resp := payroll.ListResponse{
		Records:    make([]payroll.RecordResponse, 0, len(records)),
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	for _, r := range records {
		resp.Records = append(resp.Records, payroll.ToRecordResponse(r))
	}
	return resp, nil
}

// ListMine implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMine(ctx context.Context, session user.Session, filter payroll.ListFilter) (payroll.ListResponse, error) {
	if session.EmployeeID == "" {
		return payroll.ListResponse{}, employee.ErrEmployeeNotFound
	}
	filter.EmployeeID = session.EmployeeID
	return s.List(ctx, filter)
}

// Payslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, session user.Session, id string) (payroll.Payslip, error) {
	record, err := s.visible(ctx, session, id)
	if err != nil {
		return payroll.Payslip{}, err
	}
	content, err := payslip.Render(record)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to render payslip: %w", err)
	}
	return payroll.Payslip{Filename: payslip.Filename(record), Content: content}, nil
}
