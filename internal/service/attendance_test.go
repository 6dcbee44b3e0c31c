package service

import (
	"context"
	"testing"
	"time"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/schedule"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/stretchr/testify/suite"
)

type AttendanceServiceSuite struct {
	ServiceSuite
	service     AttendanceService
	ownerCtx    context.Context
	locationID  string
	employeeCtx context.Context
	employee    *staff.Staff
}

func TestAttendanceService(t *testing.T) {
	suite.Run(t, new(AttendanceServiceSuite))
}

func (s *AttendanceServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewAttendanceService(s.params)

	ctx, resp := s.signup(types.PlanStarter)
	s.ownerCtx = ctx
	s.locationID = resp.Location.ID
	s.employeeCtx, s.employee = s.addStaff(ctx, types.SystemRoleEmployee)
}

// shiftAt schedules a shift for staffID starting at the current time plus offset
func (s *AttendanceServiceSuite) shiftAt(staffID string, offset time.Duration) *schedule.Shift {
	start := s.GetNow().Add(offset)
	sh, err := NewScheduleService(s.params).CreateShift(s.ownerCtx, dto.CreateShiftRequest{
		StaffID:    staffID,
		LocationID: s.locationID,
		StartsAt:   start,
		EndsAt:     start.Add(8 * time.Hour),
	})
	s.Require().NoError(err)
	return sh
}

func (s *AttendanceServiceSuite) TestClockInAndOut() {
	in, err := s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{})
	s.Require().NoError(err)
	s.True(in.IsOpen())
	s.False(in.Late)
	s.True(in.ClockInAt.Equal(s.GetNow()))

	_, err = s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{})
	s.True(ierr.IsInvalidOperation(err))

	s.GetClock().Advance(8*time.Hour + 30*time.Minute)
	out, err := s.service.ClockOut(s.employeeCtx)
	s.Require().NoError(err)
	s.Equal(in.ID, out.ID)
	s.False(out.IsOpen())
	s.Equal(510, out.WorkedMinutes)

	_, err = s.service.ClockOut(s.employeeCtx)
	s.True(ierr.IsInvalidOperation(err))

	// a new clock in is allowed once the previous one is closed
	_, err = s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{})
	s.NoError(err)
}

func (s *AttendanceServiceSuite) TestClockIn_Lateness() {
	onTime := s.shiftAt(s.employee.ID, -10*time.Minute)
	rec, err := s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{ShiftID: onTime.ID})
	s.Require().NoError(err)
	s.Equal(onTime.ID, rec.ShiftID)
	s.False(rec.Late)
	_, err = s.service.ClockOut(s.employeeCtx)
	s.Require().NoError(err)

	late := s.shiftAt(s.employee.ID, 24*time.Hour)
	s.GetClock().Advance(24*time.Hour + 16*time.Minute)
	rec, err = s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{ShiftID: late.ID})
	s.Require().NoError(err)
	s.True(rec.Late)
}

func (s *AttendanceServiceSuite) TestClockIn_Rejects() {
	_, manager := s.addStaff(s.ownerCtx, types.SystemRoleManager)
	theirs := s.shiftAt(manager.ID, 0)

	_, err := s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{ShiftID: theirs.ID})
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{ShiftID: "shift_missing"})
	s.True(ierr.IsNotFound(err))

	_, err = s.service.ClockIn(s.GetContext(), dto.ClockInRequest{})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AttendanceServiceSuite) TestListAttendance() {
	managerCtx, manager := s.addStaff(s.ownerCtx, types.SystemRoleManager)
	_, err := s.service.ClockIn(s.employeeCtx, dto.ClockInRequest{})
	s.Require().NoError(err)
	_, err = s.service.ClockIn(managerCtx, dto.ClockInRequest{})
	s.Require().NoError(err)

	all, err := s.service.ListAttendance(s.ownerCtx, "")
	s.Require().NoError(err)
	s.Equal(2, all.Total)

	one, err := s.service.ListAttendance(managerCtx, s.employee.ID)
	s.Require().NoError(err)
	s.Require().Equal(1, one.Total)
	s.Equal(s.employee.ID, one.Items[0].StaffID)

	own, err := s.service.ListAttendance(s.employeeCtx, manager.ID)
	s.Require().NoError(err)
	s.Require().Equal(1, own.Total)
	s.Equal(s.employee.ID, own.Items[0].StaffID)
}
