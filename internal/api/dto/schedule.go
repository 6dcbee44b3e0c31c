package dto

import (
	"context"
	"time"

	"github.com/afyastaff/afyastaff/internal/domain/attendance"
	"github.com/afyastaff/afyastaff/internal/domain/schedule"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
)

type CreateShiftRequest struct {
	StaffID    string    `json:"staff_id" validate:"required"`
	LocationID string    `json:"location_id" validate:"required"`
	StartsAt   time.Time `json:"starts_at" validate:"required"`
	EndsAt     time.Time `json:"ends_at" validate:"required"`
	Notes      string    `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateShiftRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.EndsAt.After(r.StartsAt) {
		return ierr.NewError("shift ends before it starts").
			WithHint("The shift must end after it starts").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateShiftRequest) ToShift(ctx context.Context) *schedule.Shift {
	return &schedule.Shift{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SHIFT),
		StaffID:    r.StaffID,
		LocationID: r.LocationID,
		StartsAt:   r.StartsAt.UTC(),
		EndsAt:     r.EndsAt.UTC(),
		Notes:      r.Notes,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

// ListShiftsRequest selects shifts overlapping [From, To)
type ListShiftsRequest struct {
	StaffID    string    `form:"staff_id"`
	LocationID string    `form:"location_id"`
	From       time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ListShiftsResponse = types.ListResponse[*schedule.Shift]

type ClockInRequest struct {
	ShiftID string `json:"shift_id,omitempty"`
}

type ListAttendanceResponse = types.ListResponse[*attendance.Record]
