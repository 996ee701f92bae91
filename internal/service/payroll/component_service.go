package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
)

type ComponentTypeServiceImpl struct {
	payroll.ComponentTypeRepository
}

func NewComponentTypeService(repo payroll.ComponentTypeRepository) payroll.ComponentTypeService {
	return &ComponentTypeServiceImpl{ComponentTypeRepository: repo}
}

func (s *ComponentTypeServiceImpl) Create(ctx context.Context, req payroll.CreateComponentTypeRequest) (payroll.ComponentTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentTypeResponse{}, err
	}
	created, err := s.ComponentTypeRepository.Create(ctx, payroll.ComponentType{
		Name:        strings.TrimSpace(req.Name),
		Kind:        payroll.ComponentKind(req.Type),
		Description: req.Description,
		Percent:     req.Percent,
		IsActive:    true,
	})
	if err != nil {
		return payroll.ComponentTypeResponse{}, err
	}
	return payroll.ToComponentTypeResponse(created), nil
}

func (s *ComponentTypeServiceImpl) GetByID(ctx context.Context, id string) (payroll.ComponentTypeResponse, error) {
	c, err := s.ComponentTypeRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.ComponentTypeResponse{}, err
	}
	return payroll.ToComponentTypeResponse(c), nil
}

func (s *ComponentTypeServiceImpl) List(ctx context.Context, activeOnly bool) ([]payroll.ComponentTypeResponse, error) {
	types, err := s.ComponentTypeRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll components: %w", err)
	}
	out := make([]payroll.ComponentTypeResponse, 0, len(types))
	for _, c := range types {
		out = append(out, payroll.ToComponentTypeResponse(c))
	}
	return out, nil
}

// Update edits the master entry only. Stored records keep their snapshot.
func (s *ComponentTypeServiceImpl) Update(ctx context.Context, id string, req payroll.UpdateComponentTypeRequest) (payroll.ComponentTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentTypeResponse{}, err
	}
	c, err := s.ComponentTypeRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.ComponentTypeResponse{}, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		c.Kind = payroll.ComponentKind(*req.Type)
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Percent != nil {
		c.Percent = *req.Percent
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.ComponentTypeRepository.Update(ctx, c); err != nil {
		return payroll.ComponentTypeResponse{}, err
	}
	return payroll.ToComponentTypeResponse(c), nil
}

// Delete removes an unused component type and deactivates one that payroll
// records still reference.
func (s *ComponentTypeServiceImpl) Delete(ctx context.Context, id string) error {
	c, err := s.ComponentTypeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.ComponentTypeRepository.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check payroll component usage: %w", err)
	}
	if !referenced {
		err = s.ComponentTypeRepository.Delete(ctx, id)
		if !errors.Is(err, payroll.ErrComponentTypeInUse) {
			return err
		}
	}

	c.IsActive = false
	return s.ComponentTypeRepository.Update(ctx, c)
}
