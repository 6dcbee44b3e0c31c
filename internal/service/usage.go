package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/organization"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
)

// UsageService counts live records against the plan limits of an organization.
// It never writes.
type UsageService interface {
	GetUsage(ctx context.Context) (*dto.UsageResponse, error)
	CheckAdminSeatAvailability(ctx context.Context, organizationID string) (dto.LimitUsage, error)
	CheckStaffAvailability(ctx context.Context, organizationID string) (dto.LimitUsage, error)
	CheckLocationAvailability(ctx context.Context, organizationID string) (dto.LimitUsage, error)
}

type usageService struct {
	ServiceParams
}

func NewUsageService(params ServiceParams) UsageService {
	return &usageService{
		ServiceParams: params,
	}
}

// planLimits are the effective maxima of an organization
type planLimits struct {
	Locations int
	Staff     int
	Admins    int
}

// limitsFor resolves the maxima of org on plan, honoring per organization overrides
func (p ServiceParams) limitsFor(org *organization.Organization, plan types.PlanID) planLimits {
	cfg, ok := p.Config.Billing.Plan(plan)
	if !ok {
		cfg, _ = p.Config.Billing.Plan(p.Config.Billing.DefaultPlan)
	}
	limits := planLimits{
		Locations: cfg.MaxLocations,
		Staff:     cfg.MaxStaff,
		Admins:    cfg.MaxAdmins,
	}
	if org.MaxLocations != nil {
		limits.Locations = *org.MaxLocations
	}
	if org.MaxStaff != nil {
		limits.Staff = *org.MaxStaff
	}
	if org.MaxAdmins != nil {
		limits.Admins = *org.MaxAdmins
	}
	return limits
}

// ensurePlanFits refuses a move to plan while current usage exceeds its limits
func (p ServiceParams) ensurePlanFits(ctx context.Context, org *organization.Organization, plan types.PlanID) error {
	usage, err := NewUsageService(p).GetUsage(ctx)
	if err != nil {
		return err
	}
	limits := p.limitsFor(org, plan)
	if usage.Locations.Used <= limits.Locations && usage.Staff.Used <= limits.Staff && usage.AdminSeats.Used <= limits.Admins {
		return nil
	}
	return ierr.NewError("current usage exceeds plan limits").
		WithHintf("Your organization uses more than the %s plan allows. Remove locations, staff or admins first.", plan).
		WithOrganization(org.ID).
		WithDetail("plan", plan).
		WithReportableDetails(map[string]any{
			"locations":     usage.Locations.Used,
			"max_locations": limits.Locations,
			"staff":         usage.Staff.Used,
			"max_staff":     limits.Staff,
			"admins":        usage.AdminSeats.Used,
			"max_admins":    limits.Admins,
		}).
		Mark(ierr.ErrValidation)
}

func (s *usageService) GetUsage(ctx context.Context) (*dto.UsageResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}

	org, err := s.OrgRepo.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	limits := s.limitsFor(org, org.Plan)

	locations, err := s.LocationRepo.CountLive(ctx, orgID)
	if err != nil {
		return nil, err
	}
	staffCount, err := s.countStaff(ctx, orgID)
	if err != nil {
		return nil, err
	}
	admins, err := s.countAdmins(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &dto.UsageResponse{
		Plan:       org.Plan,
		Locations:  dto.NewLimitUsage(locations, limits.Locations),
		Staff:      dto.NewLimitUsage(staffCount, limits.Staff),
		AdminSeats: dto.NewLimitUsage(admins, limits.Admins),
	}, nil
}

func (s *usageService) CheckAdminSeatAvailability(ctx context.Context, organizationID string) (dto.LimitUsage, error) {
	org, err := s.OrgRepo.Get(ctx, organizationID)
	if err != nil {
		return dto.LimitUsage{}, err
	}
	used, err := s.countAdmins(ctx, organizationID)
	if err != nil {
		return dto.LimitUsage{}, err
	}
	return dto.NewLimitUsage(used, s.limitsFor(org, org.Plan).Admins), nil
}

func (s *usageService) CheckStaffAvailability(ctx context.Context, organizationID string) (dto.LimitUsage, error) {
	org, err := s.OrgRepo.Get(ctx, organizationID)
	if err != nil {
		return dto.LimitUsage{}, err
	}
	used, err := s.countStaff(ctx, organizationID)
	if err != nil {
		return dto.LimitUsage{}, err
	}
	return dto.NewLimitUsage(used, s.limitsFor(org, org.Plan).Staff), nil
}

func (s *usageService) CheckLocationAvailability(ctx context.Context, organizationID string) (dto.LimitUsage, error) {
	org, err := s.OrgRepo.Get(ctx, organizationID)
	if err != nil {
		return dto.LimitUsage{}, err
	}
	used, err := s.LocationRepo.CountLive(ctx, organizationID)
	if err != nil {
		return dto.LimitUsage{}, err
	}
	return dto.NewLimitUsage(used, s.limitsFor(org, org.Plan).Locations), nil
}

func (s *usageService) countStaff(ctx context.Context, organizationID string) (int, error) {
	return s.StaffRepo.Count(ctx, staff.Filter{OrganizationID: organizationID})
}

func (s *usageService) countAdmins(ctx context.Context, organizationID string) (int, error) {
	return s.StaffRepo.Count(ctx, staff.Filter{
		OrganizationID: organizationID,
		Roles:          []types.SystemRole{types.SystemRoleOwner, types.SystemRoleAdmin},
	})
}

// limitReached builds the error returned when a plan maximum is already in use
func limitReached(resource string, usage dto.LimitUsage, sentinel error) error {
	return ierr.NewError(resource+" limit reached").
		WithHintf("Your plan allows %d %s. Upgrade your plan to add more.", usage.Max, resource).
		WithLimit(resource, usage.Used, usage.Max).
		Mark(sentinel)
}
