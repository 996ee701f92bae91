package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// seedChunk bounds the employees per insert so the statement stays well
// under the bind parameter limit.
const seedChunk = 500

type BalanceService struct {
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	now func() time.Time
}

func NewBalanceService(balanceRepository leave.LeaveBalanceRepository, employeeRepository employee.EmployeeRepository) *BalanceService {
	return &BalanceService{
		LeaveBalanceRepository: balanceRepository,
		EmployeeRepository:     employeeRepository,
		now:                    time.Now,
	}
}

func (s *BalanceService) yearOrCurrent(year int) int {
	if year <= 0 {
		return s.now().Year()
	}
	return year
}

// Get implements leave.LeaveBalanceService.
func (s *BalanceService) Get(ctx context.Context, session user.Session, employeeID string, year int) ([]leave.BalanceResponse, error) {
	if !session.CanAccessEmployee(employeeID) {
		return nil, leave.ErrForbidden
	}

	balances, err := s.LeaveBalanceRepository.ListByEmployeeYear(ctx, employeeID, s.yearOrCurrent(year))
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	out := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, leave.ToBalanceResponse(b))
	}
	return out, nil
}

// Summary implements leave.LeaveBalanceService.
func (s *BalanceService) Summary(ctx context.Context, session user.Session, employeeID string, year int) (leave.SummaryResponse, error) {
	year = s.yearOrCurrent(year)
	balances, err := s.Get(ctx, session, employeeID, year)
	if err != nil {
		return leave.SummaryResponse{}, err
	}

	summary := leave.SummaryResponse{EmployeeID: employeeID, Year: year, Balances: balances}
	for _, b := range balances {
		summary.TotalLeaves += b.TotalLeaves
		summary.UsedLeaves += b.UsedLeaves
	}
	summary.RemainingLeaves = summary.TotalLeaves - summary.UsedLeaves
	return summary, nil
}

// SetTotal implements leave.LeaveBalanceService.
func (s *BalanceService) SetTotal(ctx context.Context, employeeID string, req leave.SetTotalRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return leave.BalanceResponse{}, err
	}

	b, err := s.LeaveBalanceRepository.Upsert(ctx, leave.LeaveBalance{
		EmployeeID:  employeeID,
		Year:        req.Year,
		LeaveType:   leave.LeaveType(req.LeaveType),
		TotalLeaves: req.TotalLeaves,
	})
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(b), nil
}

// Initialize implements leave.LeaveBalanceService.
func (s *BalanceService) Initialize(ctx context.Context, employeeID string, year int) (int, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return 0, err
	}
	return s.LeaveBalanceRepository.CreateMissing(ctx, DefaultBalances(employeeID, s.yearOrCurrent(year)))
}

// InitializeAll implements leave.LeaveBalanceService.
func (s *BalanceService) InitializeAll(ctx context.Context, year int) (int, error) {
	year = s.yearOrCurrent(year)

	ids, err := s.EmployeeRepository.ListActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	created := 0
	for start := 0; start < len(ids); start += seedChunk {
		end := start + seedChunk
		if end > len(ids) {
			end = len(ids)
		}

		batch := make([]leave.LeaveBalance, 0, (end-start)*len(leave.AllTypes))
		for _, id := range ids[start:end] {
			batch = append(batch, DefaultBalances(id, year)...)
		}
		n, err := s.LeaveBalanceRepository.CreateMissing(ctx, batch)
		if err != nil {
			return created, fmt.Errorf("failed to seed leave balances: %w", err)
		}
		created += n
	}

	slog.Info("Initialized leave balances", "year", year, "employees", len(ids), "created", created)
	return created, nil
}

// DefaultBalances returns one balance per leave type at the default
// allowance.
func DefaultBalances(employeeID string, year int) []leave.LeaveBalance {
	balances := make([]leave.LeaveBalance, 0, len(leave.AllTypes))
	for _, t := range leave.AllTypes {
		balances = append(balances, leave.LeaveBalance{
			EmployeeID:  employeeID,
			Year:        year,
			LeaveType:   t,
			TotalLeaves: leave.DefaultAllowance[t],
		})
	}
	return balances
}
