package master

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, filter department.ListFilter) (department.ListResponse, error)
	UpdateDepartment(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Designation operations
	CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error)
	GetDesignation(ctx context.Context, id string) (designation.DesignationResponse, error)
	ListDesignations(ctx context.Context, filter designation.ListFilter) (designation.ListResponse, error)
	UpdateDesignation(ctx context.Context, id string, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id string) error
}

type MasterServiceImpl struct {
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
) MasterService {
	return &MasterServiceImpl{
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *MasterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	name := strings.TrimSpace(req.Name)

	exists, err := s.departmentRepo.ExistsByName(ctx, name, "")
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{Name: name, Description: req.Description})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(created), nil
}

func (s *MasterServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(d), nil
}

func (s *MasterServiceImpl) ListDepartments(ctx context.Context, filter department.ListFilter) (department.ListResponse, error) {
	filter.Normalize()

	departments, total, err := s.departmentRepo.List(ctx, filter)
	if err != nil {
		return department.ListResponse{}, fmt.Errorf("failed to list departments: %w", err)
	}

	resp := department.ListResponse{
		Departments: make([]department.DepartmentResponse, 0, len(departments)),
		TotalCount:  total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}
	for _, d := range departments {
		resp.Departments = append(resp.Departments, department.ToResponse(d))
	}
	return resp, nil
}

func (s *MasterServiceImpl) UpdateDepartment(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	current, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		exists, err := s.departmentRepo.ExistsByName(ctx, name, id)
		if err != nil {
			return department.DepartmentResponse{}, fmt.Errorf("failed to check department name: %w", err)
		}
		if exists {
			return department.DepartmentResponse{}, department.ErrDepartmentNameExists
		}
		current.Name = name
	}
	if req.Description != nil {
		current.Description = req.Description
	}

	if err := s.departmentRepo.Update(ctx, current); err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(current), nil
}

func (s *MasterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *MasterServiceImpl) CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}
	name := strings.TrimSpace(req.Name)

	exists, err := s.designationRepo.ExistsByName(ctx, name, "")
	if err != nil {
		return designation.DesignationResponse{}, fmt.Errorf("failed to check designation name: %w", err)
	}
	if exists {
		return designation.DesignationResponse{}, designation.ErrDesignationNameExists
	}

	created, err := s.designationRepo.Create(ctx, designation.Designation{Name: name, Classification: req.Classification})
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.ToResponse(created), nil
}

func (s *MasterServiceImpl) GetDesignation(ctx context.Context, id string) (designation.DesignationResponse, error) {
	d, err := s.designationRepo.GetByID(ctx, id)
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.ToResponse(d), nil
}

func (s *MasterServiceImpl) ListDesignations(ctx context.Context, filter designation.ListFilter) (designation.ListResponse, error) {
	filter.Normalize()

	designations, total, err := s.designationRepo.List(ctx, filter)
	if err != nil {
		return designation.ListResponse{}, fmt.Errorf("failed to list designations: %w", err)
	}

	resp := designation.ListResponse{
		Designations: make([]designation.DesignationResponse, 0, len(designations)),
		TotalCount:   total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}
	for _, d := range designations {
		resp.Designations = append(resp.Designations, designation.ToResponse(d))
	}
	return resp, nil
}

func (s *MasterServiceImpl) UpdateDesignation(ctx context.Context, id string, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	current, err := s.designationRepo.GetByID(ctx, id)
	if err != nil {
		return designation.DesignationResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		exists, err := s.designationRepo.ExistsByName(ctx, name, id)
		if err != nil {
			return designation.DesignationResponse{}, fmt.Errorf("failed to check designation name: %w", err)
		}
		if exists {
			return designation.DesignationResponse{}, designation.ErrDesignationNameExists
		}
		current.Name = name
	}
	if req.Classification != nil {
		current.Classification = req.Classification
	}

	if err := s.designationRepo.Update(ctx, current); err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.ToResponse(current), nil
}

func (s *MasterServiceImpl) DeleteDesignation(ctx context.Context, id string) error {
	return s.designationRepo.Delete(ctx, id)
}
