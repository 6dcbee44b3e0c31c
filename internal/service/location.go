package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/location"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
)

type LocationService interface {
	CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*location.Location, error)
	ListLocations(ctx context.Context) (*dto.ListLocationsResponse, error)
	ArchiveLocation(ctx context.Context, id string) error
}

type locationService struct {
	ServiceParams
}

func NewLocationService(params ServiceParams) LocationService {
	return &locationService{
		ServiceParams: params,
	}
}

func (s *locationService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*location.Location, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityOrganizationManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	usage, err := NewUsageService(s.ServiceParams).CheckLocationAvailability(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !usage.Available {
		return nil, limitReached("locations", usage, ierr.ErrValidation)
	}

	loc := req.ToLocation(ctx)
	if err := s.LocationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) ListLocations(ctx context.Context) (*dto.ListLocationsResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.LocationRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(locations), nil
}

// ArchiveLocation keeps the record for history. A location with live staff
// assigned, or the last live location, cannot be archived.
func (s *locationService) ArchiveLocation(ctx context.Context, id string) error {
	actor, err := types.RequireCapability(ctx, types.CapabilityOrganizationManage)
	if err != nil {
		return err
	}

	loc, err := s.LocationRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if loc.Status == types.StatusArchived {
		return nil
	}

	live, err := s.LocationRepo.CountLive(ctx, actor.OrganizationID)
	if err != nil {
		return err
	}
	if live <= 1 {
		return ierr.NewError("last location").
			WithHint("An organization needs at least one location").
			Mark(ierr.ErrInvalidOperation)
	}

	assigned, err := s.StaffRepo.Count(ctx, staff.Filter{OrganizationID: actor.OrganizationID, LocationID: loc.ID})
	if err != nil {
		return err
	}
	if assigned > 0 {
		return ierr.NewError("location has staff").
			WithHintf("%d staff members are assigned to this location. Move them first.", assigned).
			WithReportableDetails(map[string]any{"location_id": loc.ID, "staff": assigned}).
			Mark(ierr.ErrInvalidOperation)
	}

	loc.Status = types.StatusArchived
	loc.Touch(ctx)
	return s.LocationRepo.Update(ctx, loc)
}
