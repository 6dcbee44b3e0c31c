package types

import (
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/samber/lo"
)

// LeaveStatus is the review status of a leave request
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
)

// LeaveType is the kind of leave requested
type LeaveType string

const (
	LeaveTypeAnnual        LeaveType = "annual"
	LeaveTypeSick          LeaveType = "sick"
	LeaveTypeMaternity     LeaveType = "maternity"
	LeaveTypePaternity     LeaveType = "paternity"
	LeaveTypeCompassionate LeaveType = "compassionate"
	LeaveTypeStudy         LeaveType = "study"
	LeaveTypeUnpaid        LeaveType = "unpaid"
)

func (t LeaveType) Validate() error {
	allowed := []LeaveType{
		LeaveTypeAnnual,
		LeaveTypeSick,
		LeaveTypeMaternity,
		LeaveTypePaternity,
		LeaveTypeCompassionate,
		LeaveTypeStudy,
		LeaveTypeUnpaid,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid leave type").
			WithHint("Choose a valid leave type").
			WithReportableDetails(map[string]any{"leave_type": t}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
