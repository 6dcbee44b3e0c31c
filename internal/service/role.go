package service

import (
	"context"
	"strings"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/cache"
	"github.com/afyastaff/afyastaff/internal/domain/role"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
)

type RoleService interface {
	CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*role.CustomRole, error)
	GetRole(ctx context.Context, id string) (*role.CustomRole, error)
	ListRoles(ctx context.Context) (*dto.ListRolesResponse, error)
	UpdateRole(ctx context.Context, id string, req dto.UpdateRoleRequest) (*role.CustomRole, error)
	DeleteRole(ctx context.Context, id string) error
}

type roleService struct {
	ServiceParams
}

func NewRoleService(params ServiceParams) RoleService {
	return &roleService{
		ServiceParams: params,
	}
}

func (s *roleService) CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*role.CustomRole, error) {
	if _, err := types.RequireCapability(ctx, types.CapabilityRolesManage); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.ToCustomRole(ctx)
	if err := s.RoleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (*role.CustomRole, error) {
	if _, err := types.RequireOrganization(ctx); err != nil {
		return nil, err
	}
	return s.RoleRepo.Get(ctx, id)
}

func (s *roleService) ListRoles(ctx context.Context) (*dto.ListRolesResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.RoleRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(roles), nil
}

func (s *roleService) UpdateRole(ctx context.Context, id string, req dto.UpdateRoleRequest) (*role.CustomRole, error) {
	if _, err := types.RequireCapability(ctx, types.CapabilityRolesManage); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.RoleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Capabilities != nil {
		r.Capabilities = req.Capabilities
	}
	r.Touch(ctx)

	if err := s.RoleRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	// holders pick up the new capabilities on their next request
	s.Cache.DeleteByPrefix(ctx, cache.GenerateKey(cache.PrefixActorStaff, r.OrganizationID))
	return r, nil
}

// DeleteRole refuses to delete a role still assigned to live staff
func (s *roleService) DeleteRole(ctx context.Context, id string) error {
	actor, err := types.RequireCapability(ctx, types.CapabilityRolesManage)
	if err != nil {
		return err
	}

	r, err := s.RoleRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	members, err := s.StaffRepo.List(ctx, staff.Filter{OrganizationID: actor.OrganizationID})
	if err != nil {
		return err
	}
	holders := lo.CountBy(members, func(m *staff.Staff) bool { return m.CustomRoleID == r.ID })
	if holders > 0 {
		return ierr.NewError("role is assigned").
			WithHintf("This role is assigned to %d staff members. Reassign them first.", holders).
			WithReportableDetails(map[string]any{"role_id": r.ID, "holders": holders}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.RoleRepo.Delete(ctx, r.ID)
}
