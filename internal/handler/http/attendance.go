package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	ListTeam(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Clock implements AttendanceHandler. A clock-in answers 201, a clock-out 200.
func (h *attendanceHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.Clock(r.Context(), s)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if resp.Action == attendance.ActionClockIn {
		slog.Info("Clocked in", "employee_id", s.EmployeeID)
		response.Created(w, "Clocked in successfully", resp)
		return
	}
	slog.Info("Clocked out", "employee_id", s.EmployeeID)
	response.SuccessWithMessage(w, "Clocked out successfully", resp)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	summary, err := h.attendanceService.Summary(r.Context(), s,
		r.URL.Query().Get("employee_id"),
		getIntQueryParam(r, "month", 0),
		getIntQueryParam(r, "year", 0),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListMine(r.Context(), s,
		getIntQueryParam(r, "month", 0),
		getIntQueryParam(r, "year", 0),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

func attendanceFilter(r *http.Request) attendance.ListFilter {
	q := r.URL.Query()
	return attendance.ListFilter{
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
		From:       getDateQueryParam(r, "from"),
		To:         getDateQueryParam(r, "to"),
		Page:       getIntQueryParam(r, "page", 1),
		PageSize:   getIntQueryParam(r, "page_size", 10),
	}
}

// ListTeam implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListTeam(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.ListTeam(r.Context(), s, attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.ListAll(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if !decode(w, r, "UpdateAttendance", &req) {
		return
	}

	resp, err := h.attendanceService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated successfully", resp)
}

// BulkMark implements AttendanceHandler.
func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkMarkRequest
	if !decode(w, r, "BulkMark", &req) {
		return
	}

	resp, err := h.attendanceService.BulkMark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance marked successfully", resp)
}
