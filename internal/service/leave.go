package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/leave"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
)

type LeaveService interface {
	SubmitLeave(ctx context.Context, req dto.SubmitLeaveRequest) (*leave.Request, error)
	ApproveLeave(ctx context.Context, id string) (*leave.Request, error)
	RejectLeave(ctx context.Context, id string, req dto.RejectLeaveRequest) (*leave.Request, error)
	CancelLeave(ctx context.Context, id string) (*leave.Request, error)
	ListLeave(ctx context.Context, req dto.ListLeaveRequest) (*dto.ListLeaveResponse, error)
}

type leaveService struct {
	ServiceParams
}

func NewLeaveService(params ServiceParams) LeaveService {
	return &leaveService{
		ServiceParams: params,
	}
}

func (s *leaveService) SubmitLeave(ctx context.Context, req dto.SubmitLeaveRequest) (*leave.Request, error) {
	actor, err := requireStaffActor(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.ToLeaveRequest(ctx, actor.StaffID)
	if err := s.LeaveRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.Logger.Infow("leave submitted",
		"organization_id", actor.OrganizationID,
		"staff_id", actor.StaffID,
		"leave_id", r.ID,
		"days", r.Days)
	return r, nil
}

func (s *leaveService) ApproveLeave(ctx context.Context, id string) (*leave.Request, error) {
	return s.review(ctx, id, types.LeaveStatusApproved, "")
}

func (s *leaveService) RejectLeave(ctx context.Context, id string, req dto.RejectLeaveRequest) (*leave.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.review(ctx, id, types.LeaveStatusRejected, req.Reason)
}

// CancelLeave withdraws a pending request. Only the requester can cancel.
func (s *leaveService) CancelLeave(ctx context.Context, id string) (*leave.Request, error) {
	actor, err := requireStaffActor(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.pendingRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.StaffID != actor.StaffID {
		return nil, ierr.NewError("not the requester").
			WithHint("Only the staff member who requested this leave can cancel it").
			Mark(ierr.ErrPermissionDenied)
	}

	r.LeaveStatus = types.LeaveStatusCancelled
	r.Touch(ctx)
	if err := s.LeaveRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListLeave returns every request to reviewers and only their own to everyone else
func (s *leaveService) ListLeave(ctx context.Context, req dto.ListLeaveRequest) (*dto.ListLeaveResponse, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := types.RequireOrganization(ctx); err != nil {
		return nil, err
	}

	filter := leave.Filter{
		OrganizationID: actor.OrganizationID,
		StaffID:        req.StaffID,
	}
	if req.Status != "" {
		filter.Statuses = []types.LeaveStatus{req.Status}
	}
	if !actor.Can(types.CapabilityLeaveApprove) && !actor.Can(types.CapabilityStaffView) {
		filter.StaffID = actor.StaffID
	}

	requests, err := s.LeaveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(requests), nil
}

func (s *leaveService) review(ctx context.Context, id string, to types.LeaveStatus, reason string) (*leave.Request, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityLeaveApprove)
	if err != nil {
		return nil, err
	}

	r, err := s.pendingRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.StaffID == actor.StaffID && !actor.IsAdmin() {
		return nil, ierr.NewError("cannot review own leave").
			WithHint("Your own leave requests must be reviewed by someone else").
			Mark(ierr.ErrPermissionDenied)
	}

	now := s.Now()
	r.LeaveStatus = to
	r.ReviewedBy = actor.UserID
	r.ReviewedAt = &now
	r.RejectionReason = reason
	r.Touch(ctx)

	if err := s.LeaveRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.Logger.Infow("leave reviewed",
		"organization_id", r.OrganizationID,
		"leave_id", r.ID,
		"leave_status", r.LeaveStatus,
		"reviewed_by", actor.UserID)
	return r, nil
}

func (s *leaveService) pendingRequest(ctx context.Context, id string) (*leave.Request, error) {
	r, err := s.LeaveRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsPending() {
		return nil, ierr.NewError("leave request is not pending").
			WithHintf("This leave request is already %s", r.LeaveStatus).
			WithReportableDetails(map[string]any{"leave_id": id, "leave_status": r.LeaveStatus}).
			Mark(ierr.ErrInvalidOperation)
	}
	return r, nil
}

// requireStaffActor returns the actor when it is linked to a staff profile
func requireStaffActor(ctx context.Context) (types.Actor, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return types.Actor{}, err
	}
	if actor.StaffID == "" || actor.OrganizationID == "" {
		return types.Actor{}, ierr.NewError("actor has no staff profile").
			WithHint("Your account is not linked to a staff profile").
			Mark(ierr.ErrPermissionDenied)
	}
	return actor, nil
}
