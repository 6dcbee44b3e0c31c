package types

import (
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/samber/lo"
)

// SystemRole is the built in role of a staff member
type SystemRole string

const (
	SystemRoleOwner    SystemRole = "OWNER"
	SystemRoleAdmin    SystemRole = "ADMIN"
	SystemRoleManager  SystemRole = "MANAGER"
	SystemRoleEmployee SystemRole = "EMPLOYEE"
	// SystemRolePlatformAdmin operates the platform and is never a staff member
	SystemRolePlatformAdmin SystemRole = "SUPER_ADMIN"
)

func (r SystemRole) String() string {
	return string(r)
}

// HoldsSeat reports whether the role consumes an admin seat
func (r SystemRole) HoldsSeat() bool {
	return r == SystemRoleOwner || r == SystemRoleAdmin
}

// Validate accepts the roles that may be assigned to staff
func (r SystemRole) Validate() error {
	allowed := []SystemRole{
		SystemRoleOwner,
		SystemRoleAdmin,
		SystemRoleManager,
		SystemRoleEmployee,
	}
	if !lo.Contains(allowed, r) {
		return ierr.NewError("invalid system role").
			WithHint("Role must be OWNER, ADMIN, MANAGER or EMPLOYEE").
			WithReportableDetails(map[string]any{"role": r}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Capability is a permission tag granted by a role
type Capability string

const (
	CapabilityBillingManage      Capability = "billing.manage"
	CapabilityOrganizationManage Capability = "organization.manage"
	CapabilityStaffManage        Capability = "staff.manage"
	CapabilityStaffView          Capability = "staff.view"
	CapabilityRolesManage        Capability = "roles.manage"
	CapabilityScheduleManage     Capability = "schedule.manage"
	CapabilityAttendanceManage   Capability = "attendance.manage"
	CapabilityLeaveApprove       Capability = "leave.approve"
	CapabilityDocumentsManage    Capability = "documents.manage"
	CapabilityPayrollManage      Capability = "payroll.manage"
)

// AllCapabilities is the closed set of capabilities
var AllCapabilities = []Capability{
	CapabilityBillingManage,
	CapabilityOrganizationManage,
	CapabilityStaffManage,
	CapabilityStaffView,
	CapabilityRolesManage,
	CapabilityScheduleManage,
	CapabilityAttendanceManage,
	CapabilityLeaveApprove,
	CapabilityDocumentsManage,
	CapabilityPayrollManage,
}

func (c Capability) Validate() error {
	if !lo.Contains(AllCapabilities, c) {
		return ierr.NewError("unknown capability").
			WithHintf("%q is not a known permission", string(c)).
			WithReportableDetails(map[string]any{"capability": c}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidateCapabilities validates every entry and rejects duplicates
func ValidateCapabilities(capabilities []Capability) error {
	for _, c := range capabilities {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if dup := lo.FindDuplicates(capabilities); len(dup) > 0 {
		return ierr.NewError("duplicate capability").
			WithHint("Each permission may only be listed once").
			WithReportableDetails(map[string]any{"duplicates": dup}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

var roleCapabilities = map[SystemRole][]Capability{
	SystemRoleOwner: AllCapabilities,
	SystemRoleAdmin: AllCapabilities,
	SystemRoleManager: {
		CapabilityStaffView,
		CapabilityScheduleManage,
		CapabilityAttendanceManage,
		CapabilityLeaveApprove,
	},
	SystemRoleEmployee:      {},
	SystemRolePlatformAdmin: AllCapabilities,
}

// CapabilitiesFor returns the capabilities of a system role merged with any
// granted by a custom role.
func CapabilitiesFor(role SystemRole, custom ...Capability) []Capability {
	base := append([]Capability{}, roleCapabilities[role]...)
	return lo.Uniq(append(base, custom...))
}
