package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/cache"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
)

type StaffService interface {
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*staff.Staff, error)
	GetStaff(ctx context.Context, id string) (*staff.Staff, error)
	GetCurrentStaff(ctx context.Context) (*staff.Staff, error)
	ListStaff(ctx context.Context, req dto.ListStaffRequest) (*dto.ListStaffResponse, error)
	UpdateStaff(ctx context.Context, id string, req dto.UpdateStaffRequest) (*staff.Staff, error)
	AssignRole(ctx context.Context, id string, req dto.AssignRoleRequest) (*staff.Staff, error)
	ArchiveStaff(ctx context.Context, id string) error
}

type staffService struct {
	ServiceParams
}

func NewStaffService(params ServiceParams) StaffService {
	return &staffService{
		ServiceParams: params,
	}
}

func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*staff.Staff, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityStaffManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.SystemRole == types.SystemRoleOwner && !canManageOwners(actor) {
		return nil, errOwnerOnly()
	}

	usage, err := NewUsageService(s.ServiceParams).CheckStaffAvailability(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !usage.Available {
		return nil, limitReached("staff", usage, ierr.ErrValidation)
	}

	if err := s.validateReferences(ctx, req.LocationID, req.CustomRoleID); err != nil {
		return nil, err
	}
	if req.UserID != "" {
		existing, err := s.StaffRepo.GetByUserID(ctx, "", req.UserID)
		if err != nil && !ierr.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, ierr.NewError("user already has a staff profile").
				WithHint("This user already belongs to an organization").
				WithReportableDetails(map[string]any{"user_id": req.UserID}).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	member := req.ToStaff(ctx)
	if member.SystemRole.HoldsSeat() {
		if err := s.reserveSeat(ctx, actor.OrganizationID, member.ID); err != nil {
			return nil, err
		}
	}

	if err := s.StaffRepo.Create(ctx, member); err != nil {
		if member.SystemRole.HoldsSeat() {
			s.releaseSeatQuietly(ctx, member)
		}
		return nil, err
	}

	s.Logger.Infow("staff created",
		"organization_id", actor.OrganizationID,
		"staff_id", member.ID,
		"system_role", member.SystemRole)
	return member, nil
}

func (s *staffService) GetStaff(ctx context.Context, id string) (*staff.Staff, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.StaffID != id && !actor.Can(types.CapabilityStaffView) {
		return nil, ierr.NewError("cannot view staff profile").
			WithHint("You do not have permission to view this profile").
			Mark(ierr.ErrPermissionDenied)
	}
	return s.StaffRepo.Get(ctx, id)
}

func (s *staffService) GetCurrentStaff(ctx context.Context) (*staff.Staff, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.StaffID == "" {
		return nil, ierr.NewError("actor has no staff profile").
			WithHint("Your account is not linked to a staff profile").
			Mark(ierr.ErrNotFound)
	}
	return s.StaffRepo.Get(ctx, actor.StaffID)
}

func (s *staffService) ListStaff(ctx context.Context, req dto.ListStaffRequest) (*dto.ListStaffResponse, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityStaffView)
	if err != nil {
		return nil, err
	}

	filter := staff.Filter{
		OrganizationID:  actor.OrganizationID,
		LocationID:      req.LocationID,
		IncludeArchived: req.IncludeArchived,
	}
	if req.Role != "" {
		filter.Roles = []types.SystemRole{req.Role}
	}

	members, err := s.StaffRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(members), nil
}

func (s *staffService) UpdateStaff(ctx context.Context, id string, req dto.UpdateStaffRequest) (*staff.Staff, error) {
	if _, err := types.RequireCapability(ctx, types.CapabilityStaffManage); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member, err := s.liveStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.LocationID != nil {
		if err := s.validateReferences(ctx, *req.LocationID, ""); err != nil {
			return nil, err
		}
		member.LocationID = *req.LocationID
	}
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.JobTitle != nil {
		member.JobTitle = *req.JobTitle
	}
	if req.BasicSalary != nil {
		member.BasicSalary = *req.BasicSalary
	}
	member.Touch(ctx)

	if err := s.StaffRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	s.forgetActor(ctx, member)
	return member, nil
}

// AssignRole changes the system and custom role of a staff member.
// Promotions to a seat holding role are refused with ErrSeatLimitExceeded
// before the profile is written.
func (s *staffService) AssignRole(ctx context.Context, id string, req dto.AssignRoleRequest) (*staff.Staff, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityStaffManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member, err := s.liveStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	involvesOwner := req.SystemRole == types.SystemRoleOwner || member.SystemRole == types.SystemRoleOwner
	if involvesOwner && member.SystemRole != req.SystemRole && !canManageOwners(actor) {
		return nil, errOwnerOnly()
	}
	if member.SystemRole == types.SystemRoleOwner && req.SystemRole != types.SystemRoleOwner {
		if err := s.ensureAnotherOwner(ctx, member); err != nil {
			return nil, err
		}
	}
	if req.CustomRoleID != nil {
		if err := s.validateReferences(ctx, "", *req.CustomRoleID); err != nil {
			return nil, err
		}
	}

	promoting := !member.SystemRole.HoldsSeat() && req.SystemRole.HoldsSeat()
	demoting := member.SystemRole.HoldsSeat() && !req.SystemRole.HoldsSeat()
	if promoting {
		if err := s.reserveSeat(ctx, member.OrganizationID, member.ID); err != nil {
			return nil, err
		}
	}

	fromRole := member.SystemRole
	member.SystemRole = req.SystemRole
	if req.CustomRoleID != nil {
		member.CustomRoleID = *req.CustomRoleID
	}
	member.Touch(ctx)

	if err := s.StaffRepo.Update(ctx, member); err != nil {
		if promoting {
			s.releaseSeatQuietly(ctx, member)
		}
		return nil, err
	}
	if demoting {
		s.releaseSeatQuietly(ctx, member)
	}
	s.forgetActor(ctx, member)

	s.Logger.Infow("staff role assigned",
		"organization_id", member.OrganizationID,
		"staff_id", member.ID,
		"from_role", fromRole,
		"to_role", member.SystemRole)
	return member, nil
}

func (s *staffService) ArchiveStaff(ctx context.Context, id string) error {
	actor, err := types.RequireCapability(ctx, types.CapabilityStaffManage)
	if err != nil {
		return err
	}

	member, err := s.liveStaff(ctx, id)
	if err != nil {
		return err
	}
	if member.ID == actor.StaffID {
		return ierr.NewError("cannot archive self").
			WithHint("You cannot archive your own profile").
			Mark(ierr.ErrInvalidOperation)
	}
	if member.SystemRole == types.SystemRoleOwner {
		if !canManageOwners(actor) {
			return errOwnerOnly()
		}
		if err := s.ensureAnotherOwner(ctx, member); err != nil {
			return err
		}
	}

	member.Status = types.StatusArchived
	member.Touch(ctx)
	if err := s.StaffRepo.Update(ctx, member); err != nil {
		return err
	}
	if member.SystemRole.HoldsSeat() {
		s.releaseSeatQuietly(ctx, member)
	}
	s.forgetActor(ctx, member)

	s.Logger.Infow("staff archived",
		"organization_id", member.OrganizationID,
		"staff_id", member.ID)
	return nil
}

func (s *staffService) liveStaff(ctx context.Context, id string) (*staff.Staff, error) {
	member, err := s.StaffRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !member.IsLive() {
		return nil, ierr.NewError("staff is archived").
			WithHint("This staff member has been archived").
			WithReportableDetails(map[string]any{"staff_id": id}).
			Mark(ierr.ErrInvalidOperation)
	}
	return member, nil
}

// validateReferences checks that the location and custom role belong to the caller's organization
func (s *staffService) validateReferences(ctx context.Context, locationID, customRoleID string) error {
	if locationID != "" {
		loc, err := s.LocationRepo.Get(ctx, locationID)
		if err != nil {
			return err
		}
		if loc.Status == types.StatusArchived {
			return ierr.NewError("location is archived").
				WithHint("Choose an active location").
				WithReportableDetails(map[string]any{"location_id": locationID}).
				Mark(ierr.ErrValidation)
		}
	}
	if customRoleID != "" {
		if _, err := s.RoleRepo.Get(ctx, customRoleID); err != nil {
			return err
		}
	}
	return nil
}

func (s *staffService) ensureAnotherOwner(ctx context.Context, member *staff.Staff) error {
	owners, err := s.StaffRepo.List(ctx, staff.Filter{
		OrganizationID: member.OrganizationID,
		Roles:          []types.SystemRole{types.SystemRoleOwner},
	})
	if err != nil {
		return err
	}
	others := lo.Filter(owners, func(o *staff.Staff, _ int) bool { return o.ID != member.ID })
	if len(others) == 0 {
		return ierr.NewError("organization needs an owner").
			WithHint("Assign another owner before changing this one").
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

func (s *staffService) releaseSeatQuietly(ctx context.Context, member *staff.Staff) {
	if err := s.releaseSeat(ctx, member.OrganizationID, member.ID); err != nil {
		s.Logger.Errorw("failed to release admin seat",
			"error", err,
			"organization_id", member.OrganizationID,
			"staff_id", member.ID)
	}
}

// forgetActor drops the cached actor resolution of the member's user
func (s *staffService) forgetActor(ctx context.Context, member *staff.Staff) {
	if member.UserID == "" {
		return
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixActorStaff, member.OrganizationID, member.UserID))
}

func canManageOwners(actor types.Actor) bool {
	return actor.Role == types.SystemRoleOwner || actor.IsPlatformAdmin()
}

func errOwnerOnly() error {
	return ierr.NewError("owner role change requires an owner").
		WithHint("Only an owner can grant or remove the owner role").
		Mark(ierr.ErrPermissionDenied)
}
