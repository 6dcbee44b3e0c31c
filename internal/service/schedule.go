package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/schedule"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
)

type ScheduleService interface {
	CreateShift(ctx context.Context, req dto.CreateShiftRequest) (*schedule.Shift, error)
	ListShifts(ctx context.Context, req dto.ListShiftsRequest) (*dto.ListShiftsResponse, error)
	DeleteShift(ctx context.Context, id string) error
}

type scheduleService struct {
	ServiceParams
}

func NewScheduleService(params ServiceParams) ScheduleService {
	return &scheduleService{
		ServiceParams: params,
	}
}

func (s *scheduleService) CreateShift(ctx context.Context, req dto.CreateShiftRequest) (*schedule.Shift, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityScheduleManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member, err := s.StaffRepo.Get(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}
	if !member.IsLive() {
		return nil, ierr.NewError("staff is archived").
			WithHint("Shifts can only be scheduled for active staff").
			WithReportableDetails(map[string]any{"staff_id": member.ID}).
			Mark(ierr.ErrValidation)
	}
	if _, err := s.LocationRepo.Get(ctx, req.LocationID); err != nil {
		return nil, err
	}

	shift := req.ToShift(ctx)
	existing, err := s.ScheduleRepo.List(ctx, schedule.Filter{
		OrganizationID: actor.OrganizationID,
		StaffID:        shift.StaffID,
	})
	if err != nil {
		return nil, err
	}
	if clash, found := lo.Find(existing, func(e *schedule.Shift) bool {
		return e.Overlaps(shift.StartsAt, shift.EndsAt)
	}); found {
		return nil, ierr.NewError("shift overlaps another shift").
			WithHintf("%s already has a shift from %s to %s", member.Name,
				clash.StartsAt.Format("2006-01-02 15:04"), clash.EndsAt.Format("2006-01-02 15:04")).
			WithReportableDetails(map[string]any{"conflicting_shift_id": clash.ID}).
			Mark(ierr.ErrValidation)
	}

	if err := s.ScheduleRepo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// ListShifts returns shifts overlapping [From, To). A zero bound is open.
// Staff without schedule rights only see their own shifts.
func (s *scheduleService) ListShifts(ctx context.Context, req dto.ListShiftsRequest) (*dto.ListShiftsResponse, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := types.RequireOrganization(ctx); err != nil {
		return nil, err
	}
	if !req.From.IsZero() && !req.To.IsZero() && !req.To.After(req.From) {
		return nil, ierr.NewError("invalid range").
			WithHint("The end of the range must be after its start").
			Mark(ierr.ErrValidation)
	}

	filter := schedule.Filter{
		OrganizationID: actor.OrganizationID,
		StaffID:        req.StaffID,
		LocationID:     req.LocationID,
	}
	if !actor.Can(types.CapabilityScheduleManage) && !actor.Can(types.CapabilityStaffView) {
		filter.StaffID = actor.StaffID
	}

	shifts, err := s.ScheduleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	shifts = lo.Filter(shifts, func(sh *schedule.Shift, _ int) bool {
		if !req.To.IsZero() && !sh.StartsAt.Before(req.To) {
			return false
		}
		if !req.From.IsZero() && !sh.EndsAt.After(req.From) {
			return false
		}
		return true
	})
	return types.NewListResponse(shifts), nil
}

func (s *scheduleService) DeleteShift(ctx context.Context, id string) error {
	if _, err := types.RequireCapability(ctx, types.CapabilityScheduleManage); err != nil {
		return err
	}
	shift, err := s.ScheduleRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.ScheduleRepo.Delete(ctx, shift.ID)
}
