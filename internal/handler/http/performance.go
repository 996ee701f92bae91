package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PerformanceHandler interface {
	Add(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{performanceService: performanceService}
}

// Add handles POST /performance
func (h *performanceHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req performance.AddAppraisalRequest
	if !decode(w, r, "AddAppraisal", &req) {
		return
	}

	resp, err := h.performanceService.Add(r.Context(), s, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Appraisal added successfully", resp)
}

// Update handles PUT /performance/{id}
func (h *performanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req performance.UpdateAppraisalRequest
	if !decode(w, r, "UpdateAppraisal", &req) {
		return
	}

	resp, err := h.performanceService.Update(r.Context(), s, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Appraisal updated successfully", resp)
}

// ListByEmployee handles GET /performance/employee/{employeeId}
func (h *performanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := h.performanceService.ListByEmployee(r.Context(), s, chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
