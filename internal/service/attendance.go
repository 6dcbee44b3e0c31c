package service

import (
	"context"
	"time"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/attendance"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
)

// clock-ins later than this after the shift start are marked late
const lateAfter = 15 * time.Minute

type AttendanceService interface {
	ClockIn(ctx context.Context, req dto.ClockInRequest) (*attendance.Record, error)
	ClockOut(ctx context.Context) (*attendance.Record, error)
	ListAttendance(ctx context.Context, staffID string) (*dto.ListAttendanceResponse, error)
}

type attendanceService struct {
	ServiceParams
}

func NewAttendanceService(params ServiceParams) AttendanceService {
	return &attendanceService{
		ServiceParams: params,
	}
}

func (s *attendanceService) ClockIn(ctx context.Context, req dto.ClockInRequest) (*attendance.Record, error) {
	actor, err := requireStaffActor(ctx)
	if err != nil {
		return nil, err
	}

	open, err := s.AttendanceRepo.GetOpen(ctx, actor.OrganizationID, actor.StaffID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if open != nil {
		return nil, ierr.NewError("already clocked in").
			WithHint("You are already clocked in. Clock out first.").
			WithReportableDetails(map[string]any{"attendance_id": open.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Now()
	record := &attendance.Record{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ATTENDANCE),
		StaffID:   actor.StaffID,
		ClockInAt: now,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	if req.ShiftID != "" {
		shift, err := s.ScheduleRepo.Get(ctx, req.ShiftID)
		if err != nil {
			return nil, err
		}
		if shift.StaffID != actor.StaffID {
			return nil, ierr.NewError("shift belongs to another staff member").
				WithHint("You can only clock in to your own shift").
				Mark(ierr.ErrPermissionDenied)
		}
		record.ShiftID = shift.ID
		record.Late = now.Sub(shift.StartsAt) > lateAfter
	}

	if err := s.AttendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.Logger.Infow("clocked in",
		"organization_id", actor.OrganizationID,
		"staff_id", actor.StaffID,
		"shift_id", record.ShiftID,
		"late", record.Late)
	return record, nil
}

func (s *attendanceService) ClockOut(ctx context.Context) (*attendance.Record, error) {
	actor, err := requireStaffActor(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.AttendanceRepo.GetOpen(ctx, actor.OrganizationID, actor.StaffID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("not clocked in").
				WithHint("You are not clocked in").
				Mark(ierr.ErrInvalidOperation)
		}
		return nil, err
	}

	now := s.Now()
	record.ClockOutAt = &now
	record.WorkedMinutes = int(now.Sub(record.ClockInAt).Minutes())
	record.Touch(ctx)

	if err := s.AttendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListAttendance returns attendance of one staff member, or of everyone
// when staffID is empty and the caller manages attendance
func (s *attendanceService) ListAttendance(ctx context.Context, staffID string) (*dto.ListAttendanceResponse, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := types.RequireOrganization(ctx); err != nil {
		return nil, err
	}
	if !actor.Can(types.CapabilityAttendanceManage) && !actor.Can(types.CapabilityStaffView) {
		staffID = actor.StaffID
	}

	records, err := s.AttendanceRepo.List(ctx, actor.OrganizationID, staffID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(records), nil
}
