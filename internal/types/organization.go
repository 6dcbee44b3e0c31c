package types

import (
	"strings"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
)

// VerificationStatus is the manual review status of an organization
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "UNVERIFIED"
	VerificationStatusPending    VerificationStatus = "PENDING"
	VerificationStatusVerified   VerificationStatus = "VERIFIED"
	VerificationStatusRejected   VerificationStatus = "REJECTED"
)

func (s VerificationStatus) String() string {
	return string(s)
}

// ParseVerificationStatus maps every value ever stored for the review status,
// including the legacy approved/active spellings, to one status.
func ParseVerificationStatus(raw string) (VerificationStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "UNVERIFIED":
		return VerificationStatusUnverified, nil
	case "PENDING":
		return VerificationStatusPending, nil
	case "VERIFIED", "APPROVED", "ACTIVE":
		return VerificationStatusVerified, nil
	case "REJECTED":
		return VerificationStatusRejected, nil
	default:
		return "", ierr.NewError("invalid verification status").
			WithReportableDetails(map[string]any{"verification_status": raw}).
			Mark(ierr.ErrValidation)
	}
}

// AccountStatus disables an organization independently of billing
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusDisabled AccountStatus = "disabled"
)
