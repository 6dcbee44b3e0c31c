package attendance

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Record is one clock-in of a staff member
type Record struct {
	ID            string     `bson:"_id" json:"id"`
	StaffID       string     `bson:"staff_id" json:"staff_id"`
	ShiftID       string     `bson:"shift_id" json:"shift_id,omitempty"`
	ClockInAt     time.Time  `bson:"clock_in_at" json:"clock_in_at"`
	ClockOutAt    *time.Time `bson:"clock_out_at" json:"clock_out_at,omitempty"`
	Late          bool       `bson:"late" json:"late"`
	WorkedMinutes int        `bson:"worked_minutes" json:"worked_minutes"`

	types.BaseModel `bson:",inline"`
}

// IsOpen reports whether the staff member has not clocked out
func (r *Record) IsOpen() bool {
	return r.ClockOutAt == nil
}
