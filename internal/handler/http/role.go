package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RoleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Permissions(w http.ResponseWriter, r *http.Request)
}

type RoleHandlerImpl struct {
	roleService role.RoleService
}

func NewRoleHandler(roleService role.RoleService) RoleHandler {
	return &RoleHandlerImpl{roleService: roleService}
}

// List implements RoleHandler.
func (h *RoleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, roles)
}

// GetByID implements RoleHandler.
func (h *RoleHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.roleService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Create implements RoleHandler.
func (h *RoleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req role.CreateRoleRequest
	if !decode(w, r, "CreateRole", &req) {
		return
	}

	resp, err := h.roleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Role created successfully", resp)
}

// Update implements RoleHandler.
func (h *RoleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req role.UpdateRoleRequest
	if !decode(w, r, "UpdateRole", &req) {
		return
	}

	resp, err := h.roleService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Role updated successfully", resp)
}

// Delete implements RoleHandler.
func (h *RoleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.roleService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Role deleted successfully", nil)
}

// Permissions implements RoleHandler.
func (h *RoleHandlerImpl) Permissions(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.roleService.Permissions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, catalog)
}
