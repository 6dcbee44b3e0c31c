package leave

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Request is a leave request of a staff member
type Request struct {
	ID              string            `bson:"_id" json:"id"`
	StaffID         string            `bson:"staff_id" json:"staff_id"`
	LeaveType       types.LeaveType   `bson:"leave_type" json:"leave_type"`
	StartDate       time.Time         `bson:"start_date" json:"start_date"`
	EndDate         time.Time         `bson:"end_date" json:"end_date"`
	Days            int               `bson:"days" json:"days"`
	Reason          string            `bson:"reason" json:"reason"`
	LeaveStatus     types.LeaveStatus `bson:"leave_status" json:"leave_status"`
	ReviewedBy      string            `bson:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time        `bson:"reviewed_at" json:"reviewed_at,omitempty"`
	RejectionReason string            `bson:"rejection_reason" json:"rejection_reason,omitempty"`

	types.BaseModel `bson:",inline"`
}

// IsPending reports whether the request still awaits review
func (r *Request) IsPending() bool {
	return r.LeaveStatus == types.LeaveStatusPending
}

// InclusiveDays counts calendar days from start to end including both
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
