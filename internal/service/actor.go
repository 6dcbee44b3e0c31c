package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/auth"
	"github.com/afyastaff/afyastaff/internal/cache"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
)

// ActorService turns validated token claims into the actor a request runs as
type ActorService interface {
	ResolveActor(ctx context.Context, claims *auth.Claims) (types.Actor, error)
}

type actorService struct {
	ServiceParams
}

func NewActorService(params ServiceParams) ActorService {
	return &actorService{
		ServiceParams: params,
	}
}

// ResolveActor loads the caller's live staff profile. A user without a
// profile resolves to an actor without an organization, which can only sign up.
// The stored system role always wins over the role carried by the token.
func (s *actorService) ResolveActor(ctx context.Context, claims *auth.Claims) (types.Actor, error) {
	if claims.Role == types.SystemRolePlatformAdmin {
		return types.Actor{
			UserID: claims.UserID,
			Role:   types.SystemRolePlatformAdmin,
		}, nil
	}

	var key string
	if claims.OrganizationID != "" {
		key = cache.GenerateKey(cache.PrefixActorStaff, claims.OrganizationID, claims.UserID)
		if cached, ok := s.Cache.Get(ctx, key); ok {
			if actor, ok := cached.(types.Actor); ok {
				return actor, nil
			}
		}
	}

	member, err := s.StaffRepo.GetByUserID(ctx, claims.OrganizationID, claims.UserID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return types.Actor{}, err
		}
		if claims.OrganizationID != "" {
			return types.Actor{}, ierr.NewError("user is not a member of the organization").
				WithHint("You are not a member of this organization").
				WithOrganization(claims.OrganizationID).
				Mark(ierr.ErrPermissionDenied)
		}
		return types.Actor{UserID: claims.UserID}, nil
	}

	var custom []types.Capability
	if member.CustomRoleID != "" {
		r, err := s.RoleRepo.Get(types.SetOrganizationID(ctx, member.OrganizationID), member.CustomRoleID)
		if err != nil && !ierr.IsNotFound(err) {
			return types.Actor{}, err
		}
		if r != nil {
			custom = r.Capabilities
		}
	}

	actor := types.Actor{
		OrganizationID: member.OrganizationID,
		UserID:         claims.UserID,
		StaffID:        member.ID,
		Role:           member.SystemRole,
		Capabilities:   types.CapabilitiesFor(member.SystemRole, custom...),
	}
	if key != "" {
		s.Cache.Set(ctx, key, actor, 0)
	}
	return actor, nil
}
