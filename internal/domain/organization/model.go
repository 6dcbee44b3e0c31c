package organization

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Organization is the tenant root. ID and OrganizationID are equal.
type Organization struct {
	ID                 string                   `bson:"_id" json:"id"`
	Name               string                   `bson:"name" json:"name"`
	Email              string                   `bson:"email" json:"email"`
	Phone              string                   `bson:"phone" json:"phone"`
	County             string                   `bson:"county" json:"county"`
	LicenseNumber      string                   `bson:"license_number" json:"license_number"`
	VerificationStatus types.VerificationStatus `bson:"verification_status" json:"verification_status"`
	RejectionReason    string                   `bson:"rejection_reason" json:"rejection_reason,omitempty"`
	SubmittedAt        *time.Time               `bson:"submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt         *time.Time               `bson:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy         string                   `bson:"reviewed_by" json:"reviewed_by,omitempty"`
	Plan               types.PlanID             `bson:"plan" json:"plan"`
	// Limit overrides, nil falls back to the plan table
	MaxLocations  *int                `bson:"max_locations,omitempty" json:"max_locations,omitempty"`
	MaxStaff      *int                `bson:"max_staff,omitempty" json:"max_staff,omitempty"`
	MaxAdmins     *int                `bson:"max_admins,omitempty" json:"max_admins,omitempty"`
	AccountStatus types.AccountStatus `bson:"account_status" json:"account_status"`

	types.BaseModel `bson:",inline"`
}

// Verification returns the normalized review status. Legacy stored values
// such as "approved" count as verified; unknown values count as unverified.
func (o *Organization) Verification() types.VerificationStatus {
	status, err := types.ParseVerificationStatus(string(o.VerificationStatus))
	if err != nil {
		return types.VerificationStatusUnverified
	}
	return status
}

// IsVerified is the single check for a verified organization
func (o *Organization) IsVerified() bool {
	return o.Verification() == types.VerificationStatusVerified
}

// IsDisabled reports whether the platform disabled the account
func (o *Organization) IsDisabled() bool {
	return o.AccountStatus == types.AccountStatusDisabled
}
