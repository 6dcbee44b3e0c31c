package testutil

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/types"
)

// SetupContext returns a request context without a caller, as seen by webhooks and cron jobs
func SetupContext() context.Context {
	return types.SetRequestID(context.Background(), types.GenerateUUID())
}

// WithActor returns ctx carrying an actor with the capabilities of its role
func WithActor(ctx context.Context, orgID, userID, staffID string, role types.SystemRole) context.Context {
	return types.SetActor(ctx, types.Actor{
		OrganizationID: orgID,
		UserID:         userID,
		StaffID:        staffID,
		Role:           role,
		Capabilities:   types.CapabilitiesFor(role),
	})
}

// WithPlatformAdmin returns ctx carrying a platform operator outside any organization
func WithPlatformAdmin(ctx context.Context) context.Context {
	return types.SetActor(ctx, types.Actor{
		UserID: "user_platform",
		Role:   types.SystemRolePlatformAdmin,
	})
}
