package service

import (
	"context"
	"strings"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/cache"
	"github.com/afyastaff/afyastaff/internal/domain/location"
	"github.com/afyastaff/afyastaff/internal/domain/organization"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type OrganizationService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error)
	GetOrganization(ctx context.Context) (*dto.OrganizationResponse, error)
	UpdateOrganization(ctx context.Context, req dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error)
	SubmitVerification(ctx context.Context, req dto.SubmitVerificationRequest) (*dto.OrganizationResponse, error)
	ReviewVerification(ctx context.Context, organizationID string, req dto.ReviewVerificationRequest) (*dto.OrganizationResponse, error)
	ListPendingVerifications(ctx context.Context) (*types.ListResponse[*dto.OrganizationResponse], error)
}

type organizationService struct {
	ServiceParams
}

func NewOrganizationService(params ServiceParams) OrganizationService {
	return &organizationService{
		ServiceParams: params,
	}
}

// Signup creates the organization, its first location, the owner profile
// holding an admin seat and a trial subscription
func (s *organizationService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.OrganizationID != "" {
		return nil, ierr.NewError("user already belongs to an organization").
			WithHint("Your account is already linked to an organization").
			WithOrganization(actor.OrganizationID).
			Mark(ierr.ErrAlreadyExists)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan := lo.Ternary(req.Plan != "", req.Plan, s.Config.Billing.DefaultPlan)
	orgID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION)
	orgCtx := types.SetOrganizationID(ctx, orgID)

	org := req.ToOrganization(orgCtx, orgID, plan)
	if err := s.OrgRepo.Create(orgCtx, org); err != nil {
		return nil, err
	}

	loc := &location.Location{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOCATION),
		Name:      lo.Ternary(strings.TrimSpace(req.LocationName) != "", strings.TrimSpace(req.LocationName), org.Name),
		County:    req.County,
		BaseModel: types.GetDefaultBaseModel(orgCtx),
	}
	if err := s.LocationRepo.Create(orgCtx, loc); err != nil {
		return nil, err
	}

	owner := &staff.Staff{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STAFF),
		UserID:      actor.UserID,
		Name:        strings.TrimSpace(req.OwnerName),
		Email:       org.Email,
		Phone:       org.Phone,
		LocationID:  loc.ID,
		JobTitle:    "Owner",
		SystemRole:  types.SystemRoleOwner,
		BasicSalary: decimal.Zero,
		BaseModel:   types.GetDefaultBaseModel(orgCtx),
	}
	if err := s.reserveSeat(orgCtx, orgID, owner.ID); err != nil {
		return nil, err
	}
	if err := s.StaffRepo.Create(orgCtx, owner); err != nil {
		return nil, err
	}

	sub, err := NewBillingService(s.ServiceParams).StartTrial(orgCtx, orgID, plan)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("organization signed up",
		"organization_id", orgID,
		"user_id", actor.UserID,
		"plan", plan)

	return &dto.SignupResponse{
		Organization: dto.NewOrganizationResponse(org),
		Owner:        owner,
		Location:     loc,
		Subscription: sub,
	}, nil
}

func (s *organizationService) GetOrganization(ctx context.Context) (*dto.OrganizationResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	org, err := s.OrgRepo.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) UpdateOrganization(ctx context.Context, req dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityOrganizationManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org, err := s.OrgRepo.Get(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		org.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		org.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		org.Phone = *req.Phone
	}
	if req.County != nil {
		org.County = *req.County
	}
	org.Touch(ctx)

	if err := s.save(ctx, org); err != nil {
		return nil, err
	}
	return dto.NewOrganizationResponse(org), nil
}

// SubmitVerification sends the facility licence for manual review
func (s *organizationService) SubmitVerification(ctx context.Context, req dto.SubmitVerificationRequest) (*dto.OrganizationResponse, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityOrganizationManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org, err := s.OrgRepo.Get(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	switch org.Verification() {
	case types.VerificationStatusUnverified, types.VerificationStatusRejected:
	default:
		return nil, ierr.NewError("verification cannot be submitted").
			WithHintf("Your verification is already %s", strings.ToLower(string(org.Verification()))).
			WithReportableDetails(map[string]any{"verification_status": org.Verification()}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Now()
	org.LicenseNumber = req.LicenseNumber
	org.VerificationStatus = types.VerificationStatusPending
	org.RejectionReason = ""
	org.SubmittedAt = &now
	org.Touch(ctx)

	if err := s.save(ctx, org); err != nil {
		return nil, err
	}
	s.Logger.Infow("verification submitted", "organization_id", org.ID)
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) ReviewVerification(ctx context.Context, organizationID string, req dto.ReviewVerificationRequest) (*dto.OrganizationResponse, error) {
	actor, err := requirePlatformAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org, err := s.OrgRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org.Verification() != types.VerificationStatusPending {
		return nil, ierr.NewError("verification is not pending").
			WithHint("Only pending verifications can be reviewed").
			WithReportableDetails(map[string]any{"verification_status": org.Verification()}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Now()
	org.ReviewedAt = &now
	org.ReviewedBy = actor.UserID
	if req.Approve {
		org.VerificationStatus = types.VerificationStatusVerified
		org.RejectionReason = ""
	} else {
		org.VerificationStatus = types.VerificationStatusRejected
		org.RejectionReason = strings.TrimSpace(req.Reason)
	}
	org.Touch(ctx)

	if err := s.save(ctx, org); err != nil {
		return nil, err
	}
	s.Logger.Infow("verification reviewed",
		"organization_id", org.ID,
		"verification_status", org.VerificationStatus,
		"reviewed_by", actor.UserID)
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) ListPendingVerifications(ctx context.Context) (*types.ListResponse[*dto.OrganizationResponse], error) {
	if _, err := requirePlatformAdmin(ctx); err != nil {
		return nil, err
	}
	orgs, err := s.OrgRepo.ListByVerificationStatus(ctx, types.VerificationStatusPending)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(lo.Map(orgs, func(o *organization.Organization, _ int) *dto.OrganizationResponse {
		return dto.NewOrganizationResponse(o)
	})), nil
}

func (s *organizationService) save(ctx context.Context, org *organization.Organization) error {
	if err := s.OrgRepo.Update(ctx, org); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixOrganization, org.ID))
	return nil
}

func requirePlatformAdmin(ctx context.Context) (types.Actor, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return types.Actor{}, err
	}
	if !actor.IsPlatformAdmin() {
		return types.Actor{}, ierr.NewError("platform admin required").
			WithHint("Only platform administrators can perform this action").
			Mark(ierr.ErrPermissionDenied)
	}
	return actor, nil
}
