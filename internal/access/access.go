// Package access decides which application areas an organization can reach
// given its effective billing state.
package access

import (
	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	"github.com/afyastaff/afyastaff/internal/types"
)

// Area is a group of routes sharing one access rule
type Area string

const (
	AreaBilling      Area = "billing"
	AreaVerification Area = "verification"
	AreaGeneral      Area = "general"
)

// Notice tells the client which suspension screen to render
type Notice string

const (
	NoticeNone Notice = ""
	// NoticeSuspendedAdmin asks an owner or admin to pay to restore access
	NoticeSuspendedAdmin Notice = "suspended_admin"
	// NoticeSuspendedEmployee directs an employee to their employer
	NoticeSuspendedEmployee Notice = "suspended_employee"
)

type Decision struct {
	Allowed bool   `json:"allowed"`
	Notice  Notice `json:"notice,omitempty"`
	// CanPay is true when the caller may start a payment
	CanPay bool `json:"can_pay"`
}

// Decide applies the access policy. Billing and verification stay reachable in
// every state; every other area is closed while the organization is suspended.
func Decide(area Area, eval subscription.Evaluation, role types.SystemRole) Decision {
	d := Decision{
		Allowed: true,
		CanPay:  role.HoldsSeat() || role == types.SystemRolePlatformAdmin,
	}

	if eval.State != types.BillingStateSuspended {
		return d
	}

	if d.CanPay {
		d.Notice = NoticeSuspendedAdmin
	} else {
		d.Notice = NoticeSuspendedEmployee
	}

	switch area {
	case AreaBilling, AreaVerification:
		return d
	default:
		d.Allowed = false
		return d
	}
}
