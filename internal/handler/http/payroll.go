package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)

	CreateComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
	GetComponent(w http.ResponseWriter, r *http.Request)
	UpdateComponent(w http.ResponseWriter, r *http.Request)
	DeleteComponent(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService   payroll.PayrollService
	componentService payroll.ComponentTypeService
}

func NewPayrollHandler(payrollService payroll.PayrollService, componentService payroll.ComponentTypeService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService:   payrollService,
		componentService: componentService,
	}
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if !decode(w, r, "GeneratePayroll", &req) {
		return
	}

	resp, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll generated successfully", resp)
}

// Preview implements PayrollHandler.
func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.Preview(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func payrollFilter(r *http.Request) payroll.ListFilter {
	return payroll.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      getIntQueryParam(r, "month", 0),
		Year:       getIntQueryParam(r, "year", 0),
		Page:       getIntQueryParam(r, "page", 1),
		PageSize:   getIntQueryParam(r, "page_size", 20),
	}
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.List(r.Context(), payrollFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ListMine implements PayrollHandler.
func (h *payrollHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := h.payrollService.ListMine(r.Context(), s, payrollFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetByID implements PayrollHandler.
func (h *payrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	resp, err := h.payrollService.GetByID(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Payslip implements PayrollHandler.
func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	slip, err := h.payrollService.Payslip(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, "application/pdf", slip.Filename, slip.Content)
}

// CreateComponent implements PayrollHandler.
func (h *payrollHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateComponentTypeRequest
	if !decode(w, r, "CreateComponent", &req) {
		return
	}

	resp, err := h.componentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll component created successfully", resp)
}

// ListComponents implements PayrollHandler.
func (h *payrollHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	resp, err := h.componentService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetComponent implements PayrollHandler.
func (h *payrollHandlerImpl) GetComponent(w http.ResponseWriter, r *http.Request) {
	resp, err := h.componentService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// UpdateComponent implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateComponentTypeRequest
	if !decode(w, r, "UpdateComponent", &req) {
		return
	}

	resp, err := h.componentService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll component updated successfully", resp)
}

// DeleteComponent implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := h.componentService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll component deleted successfully", nil)
}
