package service

import (
	"context"
	"testing"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/auth"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ActorServiceSuite struct {
	ServiceSuite
	service  ActorService
	ownerCtx context.Context
	orgID    string
	owner    *staff.Staff
}

func TestActorService(t *testing.T) {
	suite.Run(t, new(ActorServiceSuite))
}

func (s *ActorServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewActorService(s.params)

	ctx, resp := s.signup(types.PlanStarter)
	s.ownerCtx = ctx
	s.orgID = resp.Organization.ID
	s.owner = resp.Owner
}

func (s *ActorServiceSuite) TestResolveActor_Owner() {
	actor, err := s.service.ResolveActor(s.GetContext(), &auth.Claims{
		UserID:         s.owner.UserID,
		OrganizationID: s.orgID,
	})
	s.Require().NoError(err)
	s.Equal(s.orgID, actor.OrganizationID)
	s.Equal(s.owner.ID, actor.StaffID)
	s.Equal(types.SystemRoleOwner, actor.Role)
	s.True(actor.IsAdmin())
	s.ElementsMatch(types.AllCapabilities, actor.Capabilities)
}

func (s *ActorServiceSuite) TestResolveActor_WithoutOrganizationClaim() {
	actor, err := s.service.ResolveActor(s.GetContext(), &auth.Claims{UserID: s.owner.UserID})
	s.Require().NoError(err)
	s.Equal(s.orgID, actor.OrganizationID)
	s.Equal(s.owner.ID, actor.StaffID)

	newcomer, err := s.service.ResolveActor(s.GetContext(), &auth.Claims{UserID: "user_new"})
	s.Require().NoError(err)
	s.Equal(types.Actor{UserID: "user_new"}, newcomer)
}

func (s *ActorServiceSuite) TestResolveActor_NotAMember() {
	_, err := s.service.ResolveActor(s.GetContext(), &auth.Claims{
		UserID:         "user_stranger",
		OrganizationID: s.orgID,
	})
	s.True(ierr.IsPermissionDenied(err))

	otherCtx, _ := s.signup(types.PlanStarter)
	_, err = s.service.ResolveActor(s.GetContext(), &auth.Claims{
		UserID:         s.owner.UserID,
		OrganizationID: types.GetOrganizationID(otherCtx),
	})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *ActorServiceSuite) TestResolveActor_StoredRoleWins() {
	_, member := s.addStaff(s.ownerCtx, types.SystemRoleEmployee)

	actor, err := s.service.ResolveActor(s.GetContext(), &auth.Claims{
		UserID:         member.UserID,
		OrganizationID: s.orgID,
		Role:           types.SystemRoleAdmin,
	})
	s.Require().NoError(err)
	s.Equal(types.SystemRoleEmployee, actor.Role)
	s.Empty(actor.Capabilities)
}

func (s *ActorServiceSuite) TestResolveActor_PlatformAdmin() {
	actor, err := s.service.ResolveActor(s.GetContext(), &auth.Claims{
		UserID: "user_platform",
		Role:   types.SystemRolePlatformAdmin,
	})
	s.Require().NoError(err)
	s.True(actor.IsPlatformAdmin())
	s.Empty(actor.OrganizationID)
	s.True(actor.Can(types.CapabilityPayrollManage))
}

func (s *ActorServiceSuite) TestResolveActor_CustomRoleAndInvalidation() {
	_, member := s.addStaff(s.ownerCtx, types.SystemRoleEmployee)
	roles := NewRoleService(s.params)
	r, err := roles.CreateRole(s.ownerCtx, dto.CreateRoleRequest{
		Name:         "Rota Lead",
		Capabilities: []types.Capability{types.CapabilityScheduleManage},
	})
	s.Require().NoError(err)
	_, err = NewStaffService(s.params).AssignRole(s.ownerCtx, member.ID, dto.AssignRoleRequest{
		SystemRole:   types.SystemRoleEmployee,
		CustomRoleID: lo.ToPtr(r.ID),
	})
	s.Require().NoError(err)

	claims := &auth.Claims{UserID: member.UserID, OrganizationID: s.orgID}
	actor, err := s.service.ResolveActor(s.GetContext(), claims)
	s.Require().NoError(err)
	s.Equal([]types.Capability{types.CapabilityScheduleManage}, actor.Capabilities)

	_, err = roles.UpdateRole(s.ownerCtx, r.ID, dto.UpdateRoleRequest{
		Capabilities: []types.Capability{types.CapabilityStaffView},
	})
	s.Require().NoError(err)

	actor, err = s.service.ResolveActor(s.GetContext(), claims)
	s.Require().NoError(err)
	s.Equal([]types.Capability{types.CapabilityStaffView}, actor.Capabilities)
}

func (s *ActorServiceSuite) TestResolveActor_ArchivedMember() {
	_, member := s.addStaff(s.ownerCtx, types.SystemRoleEmployee)
	claims := &auth.Claims{UserID: member.UserID, OrganizationID: s.orgID}

	_, err := s.service.ResolveActor(s.GetContext(), claims)
	s.Require().NoError(err)

	s.Require().NoError(NewStaffService(s.params).ArchiveStaff(s.ownerCtx, member.ID))
	_, err = s.service.ResolveActor(s.GetContext(), claims)
	s.True(ierr.IsPermissionDenied(err))
}
