package service

import (
	"testing"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/testutil"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type UsageServiceSuite struct {
	ServiceSuite
	service UsageService
}

func TestUsageService(t *testing.T) {
	suite.Run(t, new(UsageServiceSuite))
}

func (s *UsageServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewUsageService(s.params)
}

func (s *UsageServiceSuite) TestGetUsage_AfterSignup() {
	ctx, _ := s.signup(types.PlanStarter)

	usage, err := s.service.GetUsage(ctx)
	s.Require().NoError(err)
	s.Equal(types.PlanStarter, usage.Plan)
	s.Equal(dto.LimitUsage{Used: 1, Max: 1, Available: false}, usage.Locations)
	s.Equal(dto.LimitUsage{Used: 1, Max: 25, Available: true}, usage.Staff)
	s.Equal(dto.LimitUsage{Used: 1, Max: 2, Available: true}, usage.AdminSeats)
}

func (s *UsageServiceSuite) TestGetUsage_CountsLiveStaffOnly() {
	ctx, _ := s.signup(types.PlanProfessional)
	s.addStaff(ctx, types.SystemRoleAdmin)
	s.addStaff(ctx, types.SystemRoleManager)
	_, leaver := s.addStaff(ctx, types.SystemRoleEmployee)
	s.Require().NoError(NewStaffService(s.params).ArchiveStaff(ctx, leaver.ID))

	usage, err := s.service.GetUsage(ctx)
	s.Require().NoError(err)
	s.Equal(3, usage.Staff.Used)
	s.Equal(100, usage.Staff.Max)
	s.Equal(2, usage.AdminSeats.Used)
	s.Equal(5, usage.AdminSeats.Max)
	s.Equal(3, usage.Locations.Max)
}

func (s *UsageServiceSuite) TestCheckAvailability_Overrides() {
	ctx, resp := s.signup(types.PlanStarter)
	orgID := resp.Organization.ID

	org, err := s.params.OrgRepo.Get(ctx, orgID)
	s.Require().NoError(err)
	org.MaxAdmins = lo.ToPtr(1)
	org.MaxLocations = lo.ToPtr(4)
	s.Require().NoError(s.params.OrgRepo.Update(ctx, org))

	seats, err := s.service.CheckAdminSeatAvailability(ctx, orgID)
	s.Require().NoError(err)
	s.False(seats.Available)
	s.Equal(1, seats.Max)

	locations, err := s.service.CheckLocationAvailability(ctx, orgID)
	s.Require().NoError(err)
	s.True(locations.Available)
	s.Equal(4, locations.Max)

	staffUsage, err := s.service.CheckStaffAvailability(ctx, orgID)
	s.Require().NoError(err)
	s.Equal(25, staffUsage.Max)
}

func (s *UsageServiceSuite) TestGetUsage_RequiresOrganization() {
	_, err := s.service.GetUsage(s.GetContext())
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.service.GetUsage(testutil.WithPlatformAdmin(s.GetContext()))
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UsageServiceSuite) TestCheckAvailability_UnknownOrganization() {
	_, err := s.service.CheckStaffAvailability(s.GetContext(), "org_missing")
	s.True(ierr.IsNotFound(err))
}
