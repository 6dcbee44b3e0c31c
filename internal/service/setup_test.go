package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/metrics"
	"github.com/afyastaff/afyastaff/internal/sentry"
	"github.com/afyastaff/afyastaff/internal/testutil"
	"github.com/afyastaff/afyastaff/internal/types"
)

// ServiceSuite wires the services against the in-memory stores and fake gateways
type ServiceSuite struct {
	testutil.BaseServiceTestSuite
	params ServiceParams
	mpesa  *testutil.FakeGateway
	stripe *testutil.FakeGateway
}

func (s *ServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.mpesa = testutil.NewFakeGateway(types.PaymentProviderMpesa)
	s.stripe = testutil.NewFakeGateway(types.PaymentProviderStripe)

	stores := s.GetStores()
	s.params = NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetCache(),
		metrics.NewDefault(),
		sentry.NewSentryService(s.GetConfig(), s.GetLogger()),
		integration.NewFactory(s.mpesa, s.stripe),
		stores.OrganizationRepo,
		stores.SubscriptionRepo,
		stores.PaymentRepo,
		stores.BillingLogRepo,
		stores.LocationRepo,
		stores.StaffRepo,
		stores.SeatRepo,
		stores.RoleRepo,
		stores.LeaveRepo,
		stores.DocumentRepo,
		stores.ScheduleRepo,
		stores.AttendanceRepo,
		stores.PayrollRepo,
	)
	s.params.Now = s.GetClock().Now
}

// signup registers a facility for a fresh user and returns the owner's context
func (s *ServiceSuite) signup(plan types.PlanID) (context.Context, *dto.SignupResponse) {
	userID := "user_" + s.GetUUID()
	ctx := testutil.WithActor(s.GetContext(), "", userID, "", "")

	resp, err := NewOrganizationService(s.params).Signup(ctx, dto.SignupRequest{
		Name:      "Uzima Medical Centre",
		Email:     "admin@uzima.co.ke",
		Phone:     "0712 345 678",
		County:    "Nairobi",
		OwnerName: "Wanjiru Kamau",
		Plan:      plan,
	})
	s.Require().NoError(err)

	return testutil.WithActor(s.GetContext(), resp.Organization.ID, userID, resp.Owner.ID, types.SystemRoleOwner), resp
}

// addStaff creates a staff member with role and returns their own context
func (s *ServiceSuite) addStaff(ownerCtx context.Context, role types.SystemRole) (context.Context, *staff.Staff) {
	userID := "user_" + s.GetUUID()
	member, err := NewStaffService(s.params).CreateStaff(ownerCtx, dto.CreateStaffRequest{
		UserID:     userID,
		Name:       "Staff " + userID,
		SystemRole: role,
	})
	s.Require().NoError(err)

	return testutil.WithActor(s.GetContext(), member.OrganizationID, userID, member.ID, role), member
}
