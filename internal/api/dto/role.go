package dto

import (
	"context"
	"strings"

	"github.com/afyastaff/afyastaff/internal/domain/role"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
)

type CreateRoleRequest struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Description  string             `json:"description,omitempty" validate:"omitempty,max=500"`
	Capabilities []types.Capability `json:"capabilities"`
}

func (r *CreateRoleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return types.ValidateCapabilities(r.Capabilities)
}

func (r *CreateRoleRequest) ToCustomRole(ctx context.Context) *role.CustomRole {
	capabilities := r.Capabilities
	if capabilities == nil {
		capabilities = []types.Capability{}
	}
	return &role.CustomRole{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ROLE),
		Name:         strings.TrimSpace(r.Name),
		Description:  r.Description,
		Capabilities: capabilities,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

type UpdateRoleRequest struct {
	Name         *string            `json:"name,omitempty" validate:"omitempty,max=100"`
	Description  *string            `json:"description,omitempty" validate:"omitempty,max=500"`
	Capabilities []types.Capability `json:"capabilities,omitempty"`
}

func (r *UpdateRoleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Capabilities != nil {
		return types.ValidateCapabilities(r.Capabilities)
	}
	return nil
}

type ListRolesResponse = types.ListResponse[*role.CustomRole]
