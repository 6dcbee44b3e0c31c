package types

import (
	"context"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID      ContextKey = "ctx_request_id"
	CtxOrganizationID ContextKey = "ctx_organization_id"
	CtxUserID         ContextKey = "ctx_user_id"
	CtxActor          ContextKey = "ctx_actor"
)

// Actor is the authenticated caller of a request. It is built once by the auth
// middleware and passed through the context into every service call.
type Actor struct {
	OrganizationID string
	UserID         string
	StaffID        string
	Role           SystemRole
	Capabilities   []Capability
}

// IsAdmin reports whether the actor holds an admin seat
func (a Actor) IsAdmin() bool {
	return a.Role.HoldsSeat()
}

// IsPlatformAdmin reports whether the actor operates the platform itself
func (a Actor) IsPlatformAdmin() bool {
	return a.Role == SystemRolePlatformAdmin
}

// Can reports whether the actor carries the capability
func (a Actor) Can(capability Capability) bool {
	if a.IsPlatformAdmin() {
		return true
	}
	for _, c := range a.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetOrganizationID(ctx context.Context) string {
	if orgID, ok := ctx.Value(CtxOrganizationID).(string); ok {
		return orgID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetActor returns the actor stored in the context, if any
func GetActor(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(CtxActor).(Actor)
	return actor, ok
}

// SetOrganizationID sets the organization ID in the context
func SetOrganizationID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, CtxOrganizationID, orgID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// SetActor stores the actor along with its organization and user ids
func SetActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, CtxActor, actor)
	ctx = SetOrganizationID(ctx, actor.OrganizationID)
	return SetUserID(ctx, actor.UserID)
}

// RequireActor returns the actor or a permission error when the request is anonymous
func RequireActor(ctx context.Context) (Actor, error) {
	actor, ok := GetActor(ctx)
	if !ok || actor.UserID == "" {
		return Actor{}, ierr.NewError("no actor in context").
			WithHint("Please sign in again").
			Mark(ierr.ErrPermissionDenied)
	}
	return actor, nil
}

// RequireCapability returns the actor when it carries the capability
func RequireCapability(ctx context.Context, capability Capability) (Actor, error) {
	actor, err := RequireActor(ctx)
	if err != nil {
		return Actor{}, err
	}
	if !actor.Can(capability) {
		return Actor{}, ierr.NewError("missing capability").
			WithHint("You do not have permission to perform this action").
			WithReportableDetails(map[string]any{
				"capability": capability,
				"role":       actor.Role,
			}).
			Mark(ierr.ErrPermissionDenied)
	}
	return actor, nil
}

// RequireOrganization returns the organization id the request is scoped to
func RequireOrganization(ctx context.Context) (string, error) {
	orgID := GetOrganizationID(ctx)
	if orgID == "" {
		return "", ierr.NewError("no organization in context").
			WithHint("Your session is not linked to an organization").
			Mark(ierr.ErrPermissionDenied)
	}
	return orgID, nil
}
