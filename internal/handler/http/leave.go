package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListTeam(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)

	GetBalance(w http.ResponseWriter, r *http.Request)
	GetBalanceSummary(w http.ResponseWriter, r *http.Request)
	SetBalance(w http.ResponseWriter, r *http.Request)
	InitializeBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService leave.LeaveRequestService
	balanceService leave.LeaveBalanceService
}

func NewLeaveHandler(requestService leave.LeaveRequestService, balanceService leave.LeaveBalanceService) LeaveHandler {
	return &LeaveHandlerImpl{
		requestService: requestService,
		balanceService: balanceService,
	}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req leave.ApplyLeaveRequest
	if !decode(w, r, "ApplyLeave", &req) {
		return
	}

	resp, err := l.requestService.Apply(r.Context(), s, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave applied successfully", resp)
}

func leaveFilter(r *http.Request) leave.ListFilter {
	q := r.URL.Query()
	return leave.ListFilter{
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		LeaveType:  q.Get("leave_type"),
		Month:      getIntQueryParam(r, "month", 0),
		Year:       getIntQueryParam(r, "year", 0),
		Page:       getIntQueryParam(r, "page", 1),
		PageSize:   getIntQueryParam(r, "page_size", 20),
	}
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := l.requestService.ListMine(r.Context(), s, leaveFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ListTeam implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTeam(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := l.requestService.ListTeam(r.Context(), s, leaveFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	resp, err := l.requestService.ListAll(r.Context(), leaveFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := l.requestService.GetByID(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req leave.UpdateLeaveRequest
	if !decode(w, r, "UpdateLeave", &req) {
		return
	}

	resp, err := l.requestService.Update(r.Context(), s, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave updated successfully", resp)
}

// UpdateStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req leave.UpdateStatusRequest
	if !decode(w, r, "UpdateLeaveStatus", &req) {
		return
	}

	id := chi.URLParam(r, "id")
	resp, err := l.requestService.UpdateStatus(r.Context(), s, id, req)
	if err != nil {
		slog.Warn("UpdateLeaveStatus failed", "leave_id", id, "status", req.Status, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave status updated successfully", resp)
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := l.requestService.Cancel(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave cancelled successfully", resp)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	balances, err := l.balanceService.Get(r.Context(), s, chi.URLParam(r, "employeeId"), getIntQueryParam(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// GetBalanceSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalanceSummary(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	summary, err := l.balanceService.Summary(r.Context(), s, chi.URLParam(r, "employeeId"), getIntQueryParam(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// SetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.SetTotalRequest
	if !decode(w, r, "SetBalance", &req) {
		return
	}

	resp, err := l.balanceService.SetTotal(r.Context(), chi.URLParam(r, "employeeId"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave balance updated successfully", resp)
}

// InitializeBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) InitializeBalance(w http.ResponseWriter, r *http.Request) {
	created, err := l.balanceService.Initialize(r.Context(), chi.URLParam(r, "employeeId"), getIntQueryParam(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave balance initialized", map[string]int{"created": created})
}
