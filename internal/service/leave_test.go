package service

import (
	"context"
	"testing"
	"time"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/stretchr/testify/suite"
)

type LeaveServiceSuite struct {
	ServiceSuite
	service     LeaveService
	ownerCtx    context.Context
	managerCtx  context.Context
	manager     *staff.Staff
	employeeCtx context.Context
	employee    *staff.Staff
}

func TestLeaveService(t *testing.T) {
	suite.Run(t, new(LeaveServiceSuite))
}

func (s *LeaveServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewLeaveService(s.params)
	s.ownerCtx, _ = s.signup(types.PlanStarter)
	s.managerCtx, s.manager = s.addStaff(s.ownerCtx, types.SystemRoleManager)
	s.employeeCtx, s.employee = s.addStaff(s.ownerCtx, types.SystemRoleEmployee)
}

func (s *LeaveServiceSuite) submit() *dto.SubmitLeaveRequest {
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	return &dto.SubmitLeaveRequest{
		LeaveType: types.LeaveTypeAnnual,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
		Reason:    " Family visit ",
	}
}

func (s *LeaveServiceSuite) TestSubmitLeave() {
	r, err := s.service.SubmitLeave(s.employeeCtx, *s.submit())
	s.Require().NoError(err)
	s.Equal(s.employee.ID, r.StaffID)
	s.Equal(5, r.Days)
	s.Equal("Family visit", r.Reason)
	s.Equal(types.LeaveStatusPending, r.LeaveStatus)
}

func (s *LeaveServiceSuite) TestSubmitLeave_Validation() {
	req := s.submit()
	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	_, err := s.service.SubmitLeave(s.employeeCtx, *req)
	s.True(ierr.IsValidation(err))

	req = s.submit()
	req.LeaveType = "holiday"
	_, err = s.service.SubmitLeave(s.employeeCtx, *req)
	s.True(ierr.IsValidation(err))

	// a single day request counts one day
	req = s.submit()
	req.EndDate = req.StartDate
	r, err := s.service.SubmitLeave(s.employeeCtx, *req)
	s.Require().NoError(err)
	s.Equal(1, r.Days)

	_, err = s.service.SubmitLeave(s.GetContext(), *s.submit())
	s.True(ierr.IsPermissionDenied(err))
}

func (s *LeaveServiceSuite) TestApproveLeave() {
	r, err := s.service.SubmitLeave(s.employeeCtx, *s.submit())
	s.Require().NoError(err)

	_, err = s.service.ApproveLeave(s.employeeCtx, r.ID)
	s.True(ierr.IsPermissionDenied(err))

	approved, err := s.service.ApproveLeave(s.managerCtx, r.ID)
	s.Require().NoError(err)
	s.Equal(types.LeaveStatusApproved, approved.LeaveStatus)
	s.Equal(s.manager.UserID, approved.ReviewedBy)
	s.Require().NotNil(approved.ReviewedAt)
	s.True(approved.ReviewedAt.Equal(s.GetNow()))

	_, err = s.service.ApproveLeave(s.managerCtx, r.ID)
	s.True(ierr.IsInvalidOperation(err))
	_, err = s.service.CancelLeave(s.employeeCtx, r.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *LeaveServiceSuite) TestRejectLeave() {
	r, err := s.service.SubmitLeave(s.employeeCtx, *s.submit())
	s.Require().NoError(err)

	_, err = s.service.RejectLeave(s.managerCtx, r.ID, dto.RejectLeaveRequest{Reason: "  "})
	s.True(ierr.IsValidation(err))

	rejected, err := s.service.RejectLeave(s.managerCtx, r.ID, dto.RejectLeaveRequest{Reason: "Short staffed that week"})
	s.Require().NoError(err)
	s.Equal(types.LeaveStatusRejected, rejected.LeaveStatus)
	s.Equal("Short staffed that week", rejected.RejectionReason)
}

func (s *LeaveServiceSuite) TestReviewOwnLeave() {
	r, err := s.service.SubmitLeave(s.managerCtx, *s.submit())
	s.Require().NoError(err)

	_, err = s.service.ApproveLeave(s.managerCtx, r.ID)
	s.True(ierr.IsPermissionDenied(err))

	// admins may approve their own
	own, err := s.service.SubmitLeave(s.ownerCtx, *s.submit())
	s.Require().NoError(err)
	_, err = s.service.ApproveLeave(s.ownerCtx, own.ID)
	s.NoError(err)
}

func (s *LeaveServiceSuite) TestCancelLeave() {
	r, err := s.service.SubmitLeave(s.employeeCtx, *s.submit())
	s.Require().NoError(err)

	_, err = s.service.CancelLeave(s.managerCtx, r.ID)
	s.True(ierr.IsPermissionDenied(err))

	cancelled, err := s.service.CancelLeave(s.employeeCtx, r.ID)
	s.Require().NoError(err)
	s.Equal(types.LeaveStatusCancelled, cancelled.LeaveStatus)
}

func (s *LeaveServiceSuite) TestListLeave() {
	_, err := s.service.SubmitLeave(s.employeeCtx, *s.submit())
	s.Require().NoError(err)
	managerLeave, err := s.service.SubmitLeave(s.managerCtx, *s.submit())
	s.Require().NoError(err)

	all, err := s.service.ListLeave(s.managerCtx, dto.ListLeaveRequest{})
	s.Require().NoError(err)
	s.Equal(2, all.Total)

	mine, err := s.service.ListLeave(s.employeeCtx, dto.ListLeaveRequest{StaffID: s.manager.ID})
	s.Require().NoError(err)
	s.Require().Equal(1, mine.Total)
	s.Equal(s.employee.ID, mine.Items[0].StaffID)

	_, err = s.service.ApproveLeave(s.ownerCtx, managerLeave.ID)
	s.Require().NoError(err)
	pending, err := s.service.ListLeave(s.ownerCtx, dto.ListLeaveRequest{Status: types.LeaveStatusPending})
	s.Require().NoError(err)
	s.Require().Equal(1, pending.Total)
	s.Equal(s.employee.ID, pending.Items[0].StaffID)
}
