package schedule

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Shift is a scheduled work period of one staff member
type Shift struct {
	ID         string    `bson:"_id" json:"id"`
	StaffID    string    `bson:"staff_id" json:"staff_id"`
	LocationID string    `bson:"location_id" json:"location_id"`
	StartsAt   time.Time `bson:"starts_at" json:"starts_at"`
	EndsAt     time.Time `bson:"ends_at" json:"ends_at"`
	Notes      string    `bson:"notes" json:"notes,omitempty"`

	types.BaseModel `bson:",inline"`
}

// Overlaps reports whether two shifts share any instant
func (s *Shift) Overlaps(start, end time.Time) bool {
	return s.StartsAt.Before(end) && start.Before(s.EndsAt)
}
