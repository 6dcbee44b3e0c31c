package staff

import (
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/shopspring/decimal"
)

// Staff is the profile of a person employed by an organization
type Staff struct {
	ID           string           `bson:"_id" json:"id"`
	UserID       string           `bson:"user_id" json:"user_id"`
	Name         string           `bson:"name" json:"name"`
	Email        string           `bson:"email" json:"email"`
	Phone        string           `bson:"phone" json:"phone"`
	LocationID   string           `bson:"location_id" json:"location_id"`
	JobTitle     string           `bson:"job_title" json:"job_title"`
	SystemRole   types.SystemRole `bson:"system_role" json:"system_role"`
	CustomRoleID string           `bson:"custom_role_id" json:"custom_role_id,omitempty"`
	// BasicSalary is the monthly gross in KES
	BasicSalary decimal.Decimal `bson:"basic_salary" json:"basic_salary"`

	types.BaseModel `bson:",inline"`
}

// IsLive reports whether the staff member is not archived
func (s *Staff) IsLive() bool {
	return s.Status != types.StatusArchived
}

// HoldsSeat reports whether the staff member consumes an admin seat
func (s *Staff) HoldsSeat() bool {
	return s.IsLive() && s.SystemRole.HoldsSeat()
}
