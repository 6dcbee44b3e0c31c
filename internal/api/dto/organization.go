package dto

import (
	"context"
	"strings"

	"github.com/afyastaff/afyastaff/internal/domain/location"
	"github.com/afyastaff/afyastaff/internal/domain/organization"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
)

// SignupRequest registers a facility together with its owner.
// The owner's user id comes from the identity token, not the body.
type SignupRequest struct {
	Name         string       `json:"name" validate:"required,max=200"`
	Email        string       `json:"email" validate:"required,email"`
	Phone        string       `json:"phone" validate:"required"`
	County       string       `json:"county" validate:"required"`
	OwnerName    string       `json:"owner_name" validate:"required"`
	LocationName string       `json:"location_name,omitempty"`
	Plan         types.PlanID `json:"plan,omitempty"`
}

func (r *SignupRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Plan != "" {
		if err := r.Plan.Validate(); err != nil {
			return err
		}
	}
	phone, err := types.NormalizePhone(r.Phone)
	if err != nil {
		return err
	}
	r.Phone = phone
	return nil
}

type SignupResponse struct {
	Organization *OrganizationResponse      `json:"organization"`
	Owner        *staff.Staff               `json:"owner"`
	Location     *location.Location         `json:"location"`
	Subscription *subscription.Subscription `json:"subscription"`
}

type UpdateOrganizationRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string `json:"phone,omitempty"`
	County *string `json:"county,omitempty"`
}

func (r *UpdateOrganizationRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Phone != nil {
		phone, err := types.NormalizePhone(*r.Phone)
		if err != nil {
			return err
		}
		r.Phone = &phone
	}
	return nil
}

type SubmitVerificationRequest struct {
	LicenseNumber string `json:"license_number" validate:"required,max=100"`
}

func (r *SubmitVerificationRequest) Validate() error {
	r.LicenseNumber = strings.TrimSpace(r.LicenseNumber)
	return validator.ValidateRequest(r)
}

type ReviewVerificationRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

func (r *ReviewVerificationRequest) Validate() error {
	if !r.Approve && strings.TrimSpace(r.Reason) == "" {
		return ierr.NewError("rejection reason is required").
			WithHint("Please give a reason for rejecting the verification").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type OrganizationResponse struct {
	*organization.Organization
	// Verified is derived from the normalized verification status
	Verified bool `json:"verified"`
}

func NewOrganizationResponse(org *organization.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		Organization: org,
		Verified:     org.IsVerified(),
	}
}

func (r *SignupRequest) ToOrganization(ctx context.Context, id string, plan types.PlanID) *organization.Organization {
	base := types.GetDefaultBaseModel(ctx)
	base.OrganizationID = id
	return &organization.Organization{
		ID:                 id,
		Name:               strings.TrimSpace(r.Name),
		Email:              strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:              r.Phone,
		County:             r.County,
		VerificationStatus: types.VerificationStatusUnverified,
		Plan:               plan,
		AccountStatus:      types.AccountStatusActive,
		BaseModel:          base,
	}
}
