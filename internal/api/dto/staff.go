package dto

import (
	"context"
	"strings"

	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateStaffRequest struct {
	UserID       string           `json:"user_id,omitempty"`
	Name         string           `json:"name" validate:"required,max=200"`
	Email        string           `json:"email" validate:"omitempty,email"`
	Phone        string           `json:"phone,omitempty"`
	LocationID   string           `json:"location_id,omitempty"`
	JobTitle     string           `json:"job_title,omitempty"`
	SystemRole   types.SystemRole `json:"system_role,omitempty"`
	CustomRoleID string           `json:"custom_role_id,omitempty"`
	BasicSalary  decimal.Decimal  `json:"basic_salary"`
}

func (r *CreateStaffRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.SystemRole == "" {
		r.SystemRole = types.SystemRoleEmployee
	}
	if err := r.SystemRole.Validate(); err != nil {
		return err
	}
	if r.Phone != "" {
		phone, err := types.NormalizePhone(r.Phone)
		if err != nil {
			return err
		}
		r.Phone = phone
	}
	if r.BasicSalary.IsNegative() {
		return ierr.NewError("basic salary cannot be negative").
			WithHint("Basic salary cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateStaffRequest) ToStaff(ctx context.Context) *staff.Staff {
	return &staff.Staff{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STAFF),
		UserID:       r.UserID,
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:        r.Phone,
		LocationID:   r.LocationID,
		JobTitle:     r.JobTitle,
		SystemRole:   r.SystemRole,
		CustomRoleID: r.CustomRoleID,
		BasicSalary:  r.BasicSalary,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

type UpdateStaffRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Email       *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string          `json:"phone,omitempty"`
	LocationID  *string          `json:"location_id,omitempty"`
	JobTitle    *string          `json:"job_title,omitempty"`
	BasicSalary *decimal.Decimal `json:"basic_salary,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Phone != nil && *r.Phone != "" {
		phone, err := types.NormalizePhone(*r.Phone)
		if err != nil {
			return err
		}
		r.Phone = &phone
	}
	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		return ierr.NewError("basic salary cannot be negative").
			WithHint("Basic salary cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type AssignRoleRequest struct {
	SystemRole   types.SystemRole `json:"system_role" validate:"required"`
	CustomRoleID *string          `json:"custom_role_id,omitempty"`
}

func (r *AssignRoleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.SystemRole.Validate()
}

type ListStaffRequest struct {
	LocationID      string           `form:"location_id"`
	Role            types.SystemRole `form:"role"`
	IncludeArchived bool             `form:"include_archived"`
}

type ListStaffResponse = types.ListResponse[*staff.Staff]
