package dto

import (
	"context"
	"strings"
	"time"

	"github.com/afyastaff/afyastaff/internal/domain/leave"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
)

type SubmitLeaveRequest struct {
	LeaveType types.LeaveType `json:"leave_type" validate:"required"`
	StartDate time.Time       `json:"start_date" validate:"required"`
	EndDate   time.Time       `json:"end_date" validate:"required"`
	Reason    string          `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

func (r *SubmitLeaveRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.LeaveType.Validate(); err != nil {
		return err
	}
	if r.EndDate.Before(r.StartDate) {
		return ierr.NewError("end date before start date").
			WithHint("The leave must end on or after its start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *SubmitLeaveRequest) ToLeaveRequest(ctx context.Context, staffID string) *leave.Request {
	return &leave.Request{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEAVE),
		StaffID:     staffID,
		LeaveType:   r.LeaveType,
		StartDate:   r.StartDate.UTC(),
		EndDate:     r.EndDate.UTC(),
		Days:        leave.InclusiveDays(r.StartDate, r.EndDate),
		Reason:      strings.TrimSpace(r.Reason),
		LeaveStatus: types.LeaveStatusPending,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

// Validate refuses a rejection without a reason
func (r *RejectLeaveRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return ierr.NewError("rejection reason is required").
			WithHint("Please give a reason for rejecting this leave request").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ListLeaveRequest struct {
	StaffID string            `form:"staff_id"`
	Status  types.LeaveStatus `form:"status"`
}

type ListLeaveResponse = types.ListResponse[*leave.Request]
